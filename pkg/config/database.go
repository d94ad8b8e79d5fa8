package config

import (
	"context"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connections
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
	log      *logrus.Logger
}

// InitDB opens the relational database and, when MONGO_URI is set, the
// activity log database.
func InitDB(cfg *Config, log *logrus.Logger) (*DB, error) {
	postgresDB, err := initPostgres(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to the database")
	}
	log.Info("Successfully connected to the database!")

	db := &DB{Postgres: postgresDB, log: log}
	if cfg.MongoURI == "" {
		log.Warn("MONGO_URI not set, activity log disabled")
		return db, nil
	}

	mongoClient, err := initMongo(cfg.MongoURI)
	if err != nil {
		db.CloseDB()
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}
	log.Info("Successfully connected to MongoDB!")
	db.Mongo = mongoClient
	return db, nil
}

// dialector picks the gorm driver from the URL scheme: sqlite://path for
// SQLite, anything else is handed to the Postgres driver.
func dialector(databaseURL string) gorm.Dialector {
	if path, ok := strings.CutPrefix(databaseURL, "sqlite://"); ok {
		return sqlite.Open(path)
	}
	return postgres.Open(databaseURL)
}

// initPostgres initializes the relational database connection using GORM
func initPostgres(cfg *Config) (*gorm.DB, error) {
	level := logger.Info
	if cfg.IsProduction() {
		level = logger.Silent
	}

	db, err := gorm.Open(dialector(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			db.log.WithError(err).Error("Error getting SQL DB from GORM")
		} else if err := sqlDB.Close(); err != nil {
			db.log.WithError(err).Error("Error closing database connection")
		} else {
			db.log.Info("Database connection closed.")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.log.WithError(err).Error("Error closing MongoDB connection")
		} else {
			db.log.Info("MongoDB connection closed.")
		}
	}
}
