package env

import (
	"errors"
	"os"
	"reward_wheel/internal/config"
)

const (
	dsnName     = "PG_DSN"
	storageName = "STORAGE"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type pgConfig struct {
	dsn string
}

func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)
	if len(dsn) == 0 {
		return nil, errors.New("pg dsn not found")
	}

	return &pgConfig{
		dsn: dsn,
	}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}

type storageConfig struct {
	driver string
}

// NewStorageConfig - выбор хранилища. Без PG_DSN по умолчанию работаем в памяти
func NewStorageConfig() (config.StorageConfig, error) {
	driver := os.Getenv(storageName)
	if len(driver) == 0 {
		driver = StorageMemory
		if len(os.Getenv(dsnName)) > 0 {
			driver = StoragePostgres
		}
	}

	if driver != StorageMemory && driver != StoragePostgres {
		return nil, errors.New("unknown storage: " + driver)
	}

	return &storageConfig{driver: driver}, nil
}

func (cfg *storageConfig) Driver() string {
	return cfg.driver
}
