package postgres

import (
	"log"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/config"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.EngineConfig) *gorm.DB {
	dsn := cfg.EngineDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.QuoteModel{},
		&models.ProposalModel{},
		&models.OrderModel{},
		&models.EscrowModel{},
		&models.PaymentEventModel{},
		&models.TopUpModel{},
		&models.TimeEntryModel{},
		&models.ApprovalRequestModel{},
		&models.PayoutModel{},
		&models.ProviderAccountModel{},
	)

	return db
}
