package workers

import (
	"context"
	"log"
	"os"
	"time"

	"tricky-turns-backend/models"
	"tricky-turns-backend/services"

	"gorm.io/gorm"
)

// PurchaseVerifier settles pending shop purchases against the Pi platform
// payment API. Runs off the request path; a purchase stays pending until
// the on-chain transaction is verified or cancelled.
type PurchaseVerifier struct {
	DB       *gorm.DB
	Platform *services.PiPlatformClient
	APIKey   string
}

func NewPurchaseVerifier(db *gorm.DB) *PurchaseVerifier {
	apiKey := os.Getenv("PI_API_KEY")
	if apiKey == "" {
		log.Fatal("PI_API_KEY environment variable is required for purchase verification")
	}
	return &PurchaseVerifier{
		DB:       db,
		Platform: services.NewPiPlatformClient(),
		APIKey:   apiKey,
	}
}

// settleOnce checks one batch of pending purchases. Purchases without a tx
// hash can never verify and are failed after a day.
func (v *PurchaseVerifier) settleOnce() {
	var pending []models.Purchase
	err := v.DB.Where("status = ?", models.PurchaseStatusPending).
		Order("purchased_at ASC").
		Limit(50).
		Find(&pending).Error
	if err != nil {
		log.Printf("[PurchaseVerifier] DB error: %v", err)
		return
	}

	for _, p := range pending {
		if p.TxHash == "" {
			if time.Since(p.PurchasedAt) > 24*time.Hour {
				v.DB.Model(&models.Purchase{}).Where("id = ?", p.ID).
					Update("status", models.PurchaseStatusFailed)
				log.Printf("[PurchaseVerifier] purchase %d failed: no transaction after 24h", p.ID)
			}
			continue
		}

		verified, cancelled, err := v.Platform.LookupPayment(v.APIKey, p.TxHash)
		if err != nil {
			// Platform hiccup: leave pending, retry next cycle.
			log.Printf("[PurchaseVerifier] lookup failed for purchase %d: %v", p.ID, err)
			continue
		}

		switch {
		case verified:
			v.DB.Model(&models.Purchase{}).Where("id = ?", p.ID).
				Update("status", models.PurchaseStatusCompleted)
			log.Printf("✅ Purchase %d completed (tx %s)", p.ID, p.TxHash)
		case cancelled:
			v.DB.Model(&models.Purchase{}).Where("id = ?", p.ID).
				Update("status", models.PurchaseStatusFailed)
			log.Printf("[PurchaseVerifier] purchase %d failed: payment cancelled", p.ID)
		}
	}
}

// Run polls until the context is cancelled.
func (v *PurchaseVerifier) Run(ctx context.Context, pollInterval time.Duration) {
	log.Println("Starting purchase verification worker...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Purchase verification worker stopped.")
			return
		case <-ticker.C:
			v.settleOnce()
		}
	}
}
