package scheduler

import (
	"context"
	"fmt"

	"cinelog/internal/controllers"
	"cinelog/internal/models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Default list sizes used when warming the shared category caches
const (
	trendingWarmLimit   = 20
	nowPlayingWarmLimit = 12
	goatsWarmLimit      = 20
	classicsWarmLimit   = 12
)

// Scheduler keeps the shared category lists warm so user requests
// rarely pay the multi-page upstream scan
type Scheduler struct {
	cron         *cron.Cron
	categoryCtrl *controllers.CategoryController
	logger       *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(categoryCtrl *controllers.CategoryController, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		categoryCtrl: categoryCtrl,
		logger:       logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	// Every hour: refresh trending, whose feed rotates the fastest
	_, err := s.cron.AddFunc("0 * * * *", func() {
		s.refresh(models.CategoryTrending, trendingWarmLimit)
	})
	if err != nil {
		return fmt.Errorf("failed to add trending job: %w", err)
	}

	// Every 6 hours: refresh now playing
	_, err = s.cron.AddFunc("0 */6 * * *", func() {
		s.refresh(models.CategoryNowPlaying, nowPlayingWarmLimit)
	})
	if err != nil {
		return fmt.Errorf("failed to add now playing job: %w", err)
	}

	// Every 12 hours: refresh the all-time greats
	_, err = s.cron.AddFunc("0 */12 * * *", func() {
		s.refresh(models.CategoryGoats, goatsWarmLimit)
	})
	if err != nil {
		return fmt.Errorf("failed to add goats job: %w", err)
	}

	// Daily: refresh classics
	_, err = s.cron.AddFunc("0 4 * * *", func() {
		s.refresh(models.CategoryClassics, classicsWarmLimit)
	})
	if err != nil {
		return fmt.Errorf("failed to add classics job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	// Warm the caches immediately on startup
	go func() {
		s.refresh(models.CategoryTrending, trendingWarmLimit)
		s.refresh(models.CategoryNowPlaying, nowPlayingWarmLimit)
		s.refresh(models.CategoryGoats, goatsWarmLimit)
		s.refresh(models.CategoryClassics, classicsWarmLimit)
	}()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// refresh rebuilds one category list and logs the outcome
func (s *Scheduler) refresh(category models.Category, limit int) {
	s.logger.WithField("category", category).Info("Running scheduled category refresh")
	ctx := context.Background()

	if err := s.categoryCtrl.RefreshCategory(ctx, category, limit); err != nil {
		s.logger.WithError(err).WithField("category", category).Error("Category refresh failed")
	} else {
		s.logger.WithField("category", category).Info("Category refresh completed")
	}
}
