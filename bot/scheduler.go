package bot

import (
	"log"
	"sync"
	"time"

	"selfrole-bot/utils/database"
)

// Scheduler runs the periodic maintenance work: pruning expired role
// cooldowns. It is safe to run concurrently with interactions; the
// store's row-level semantics carry all the coordination.
type Scheduler struct {
	bot  *Bot
	done chan struct{}
	wg   sync.WaitGroup
}

// NewScheduler creates a stopped scheduler for the bot.
func NewScheduler(b *Bot) *Scheduler {
	return &Scheduler{
		bot:  b,
		done: make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.sweepLoop()
}

// Stop terminates the background work and waits for it to finish.
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	close(s.done)
	s.wg.Wait()
	log.Println("Scheduler stopped.")
}

func (s *Scheduler) sweepLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.bot.Config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := database.SweepExpiredCooldowns(s.bot.DB, time.Now())
			if err != nil {
				log.Printf("Failed to sweep expired cooldowns: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Swept %d expired cooldown(s)", n)
			}
		case <-s.done:
			return
		}
	}
}
