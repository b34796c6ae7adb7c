package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/rfedorina/dining-recommendations/internal/notify"
	"github.com/rfedorina/dining-recommendations/internal/userdata"
)

// MealTime pairs a meal type with a daily HH:MM trigger time.
type MealTime struct {
	MealType string
	At       string
}

// Scheduler fires meal-time notifications for every user currently sharing a
// location.
type Scheduler struct {
	scheduler *gocron.Scheduler
	trigger   *notify.Trigger
	users     userdata.LocationResolver
	schedule  []MealTime
}

// New creates a Scheduler.
func New(schedule []MealTime, trigger *notify.Trigger, users userdata.LocationResolver) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		trigger:   trigger,
		users:     users,
		schedule:  schedule,
	}
}

// Start registers one daily job per configured meal time and starts the
// underlying scheduler. An empty schedule is valid and disables the feature.
func (s *Scheduler) Start() error {
	if len(s.schedule) == 0 {
		log.Println("scheduler: no meal times configured; nothing to schedule")
		return nil
	}

	for _, entry := range s.schedule {
		entry := entry
		if _, err := s.scheduler.Every(1).Day().At(entry.At).Do(func() {
			s.runMeal(entry.MealType)
		}); err != nil {
			return err
		}
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) runMeal(mealType string) {
	log.Printf("scheduler: running %s notification job", mealType)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	users, err := s.users.UsersWithLocation(ctx)
	if err != nil {
		log.Printf("scheduler: listing users failed: %v", err)
		return
	}

	var wg sync.WaitGroup
	for _, userID := range users {
		userID := userID
		wg.Add(1)
		go func() {
			defer wg.Done()

			sent, err := s.trigger.Send(ctx, userID, mealType)
			if err != nil {
				log.Printf("scheduler: notify failed for %s: %v", userID, err)
				return
			}
			if !sent {
				log.Printf("scheduler: nothing sent to %s for %s", userID, mealType)
			}
		}()
	}
	wg.Wait()

	log.Printf("scheduler: completed %s notification job", mealType)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
