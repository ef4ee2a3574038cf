package cmd

import "fmt"

type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	S3Region        string
	S3Endpoint      string
	S3Bucket        string
	S3PublicBaseURL string
	JWTSecret       string
}

// PostgresDSN builds the connection string for the record store.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
