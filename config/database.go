package config

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"cobranca-api/models"
)

var DB *gorm.DB

func ConnectDatabase() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"),
		)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect database: ", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Order{},
		&models.Deposit{},
		&models.Credit{},
		&models.PendingSettlement{},
		&models.PendingSettlementOrder{},
		&models.DiscountCascadeEntry{},
		&models.PendingSettlementPayment{},
		&models.PendingAttachment{},
		&models.SettlementRecord{},
		&models.SettlementRecordOrder{},
		&models.SettlementRecordPayment{},
		&models.SettlementRecordAttachment{},
		&models.SettlementHistory{},
		&models.NumberSequence{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	DB = db
}
