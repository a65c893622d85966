package cmd

type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	AmqpHost         string
	AmqpPort         string
	AmqpUser         string
	AmqpPassword     string
	AmqpVHost        string
	EventsExchange   string
	OrderInboxQueue  string
	DeliveryTimezone string
}
