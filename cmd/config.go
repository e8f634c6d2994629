package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	LedgerGatewayURL string
	LedgerTimeout    time.Duration
	RabbitMQURL      string
	AuditSchedule    string
	PendingThreshold time.Duration
}

// PostgresDSN assembles the connection string for the order store.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
