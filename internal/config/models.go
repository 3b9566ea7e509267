package config

import "time"

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	ListenAddress string
}

// FraudConfig represents the scoring configuration
type FraudConfig struct {
	Threshold      float64
	TrustedSenders []string
	MaxContentSize int
}

// ModelsConfig represents the model artifact locations
type ModelsConfig struct {
	BasePath       string
	DistilBERTPath string
	RoBERTaPath    string
	LSTMPath       string
	XGBoostPath    string
}

// CacheConfig represents the verdict cache configuration
type CacheConfig struct {
	Type             string
	Enabled          bool
	TTL              time.Duration
	CleanupFrequency time.Duration
	OpTimeout        time.Duration
	RedisAddr        string
	RedisDB          int
	RedisPassword    string
	SQLitePath       string
	MySQLDSN         string
}

// GetServer returns the server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress: c.GetString("server.listen_address"),
	}
}

// GetFraud returns the scoring configuration
func (c *Config) GetFraud() FraudConfig {
	return FraudConfig{
		Threshold:      c.GetFloat64("fraud.threshold"),
		TrustedSenders: c.GetStringSlice("fraud.trusted_senders"),
		MaxContentSize: c.GetInt("fraud.max_content_size"),
	}
}

// GetModels returns the model artifact configuration
func (c *Config) GetModels() ModelsConfig {
	return ModelsConfig{
		BasePath:       c.GetString("models.base_path"),
		DistilBERTPath: c.GetString("models.distilbert_path"),
		RoBERTaPath:    c.GetString("models.roberta_path"),
		LSTMPath:       c.GetString("models.lstm_path"),
		XGBoostPath:    c.GetString("models.xgboost_path"),
	}
}

// GetCache returns the cache configuration
func (c *Config) GetCache() CacheConfig {
	return CacheConfig{
		Type:             c.GetString("cache.type"),
		Enabled:          c.GetBool("cache.enabled"),
		TTL:              c.v.GetDuration("cache.ttl"),
		CleanupFrequency: c.v.GetDuration("cache.cleanup_frequency"),
		OpTimeout:        c.v.GetDuration("cache.op_timeout"),
		RedisAddr:        c.GetString("cache.redis_addr"),
		RedisDB:          c.GetInt("cache.redis_db"),
		RedisPassword:    c.GetString("cache.redis_password"),
		SQLitePath:       c.GetString("cache.sqlite_path"),
		MySQLDSN:         c.GetString("cache.mysql_dsn"),
	}
}
