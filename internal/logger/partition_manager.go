package logger

import (
	"context"
	"time"

	"github.com/paybridge/crypto-checkout/internal/repository"
	"github.com/robfig/cron/v3"
)

// PartitionManager keeps monthly partitions of the logs table ahead of
// the writer: a few months are created on startup and a new one is
// added on the first of every month.
type PartitionManager struct {
	repo repository.LogRepository
	cron *cron.Cron
}

func NewPartitionManager(repo repository.LogRepository) *PartitionManager {
	c := cron.New()
	pm := &PartitionManager{
		repo: repo,
		cron: c,
	}

	if _, err := c.AddFunc("0 0 1 * *", pm.createNextMonthPartitionWrapper); err != nil {
		Errorf("failed to add cron job: %v", err)
	}

	return pm
}

func (pm *PartitionManager) Start(ctx context.Context) error {
	if err := pm.createInitialPartitions(ctx); err != nil {
		Errorf("failed to create initial partitions: %s", err)
	}

	pm.cron.Start()

	go func() {
		<-ctx.Done()
		pm.cron.Stop()
	}()

	return nil
}

func (pm *PartitionManager) createInitialPartitions(ctx context.Context) error {
	now := time.Now()
	for i := 0; i < 3; i++ {
		month := now.AddDate(0, i, 0)
		if err := pm.repo.CreatePartition(ctx, month); err != nil {
			return err
		}
	}
	return nil
}

func (pm *PartitionManager) createNextMonthPartition(ctx context.Context) error {
	nextMonth := time.Now().AddDate(0, 3, 0)
	return pm.repo.CreatePartition(ctx, nextMonth)
}

func (pm *PartitionManager) createNextMonthPartitionWrapper() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := pm.createNextMonthPartition(ctx); err != nil {
		Errorf("failed to create next month partition: %s", err)
	}
}
