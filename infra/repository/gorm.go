package repository

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/amirasaad/bankcli/pkg/dto"
	pkgrepo "github.com/amirasaad/bankcli/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const batchSize = 200

// GormStore keeps the bank document in three relational tables. Every Save
// replaces their whole content inside one database transaction.
type GormStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormStore wraps an open connection. It does not migrate the schema.
func NewGormStore(db *gorm.DB, logger *slog.Logger) *GormStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormStore{db: db, logger: logger}
}

// OpenGormStore connects with the given dialect ("postgres" or "sqlite")
// and migrates the schema.
func OpenGormStore(
	ctx context.Context,
	dialect, dsn string,
	appEnv string,
	logger *slog.Logger,
) (*GormStore, error) {
	var dialector gorm.Dialector
	switch dialect {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}

	logMode := gormlogger.Silent
	if appEnv == "development" {
		logMode = gormlogger.Warn
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}

	s := NewGormStore(db, logger)
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates or updates the tables.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&User{}, &Account{}, &Transaction{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Load reads the stored state. Empty tables mean nothing was saved yet.
func (s *GormStore) Load(ctx context.Context) (*dto.Document, error) {
	db := s.db.WithContext(ctx)

	var users []User
	if err := db.Order("cpf").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	var accounts []Account
	if err := db.Order("owner_cpf").Order("owner_position").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	var txs []Transaction
	if err := db.Order("account_number").Order("position").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if len(users) == 0 && len(accounts) == 0 {
		return nil, pkgrepo.ErrSnapshotNotFound
	}

	doc := dto.NewDocument()
	for _, u := range users {
		doc.Users[u.CPF] = dto.UserRecord{
			CPF:          u.CPF,
			Name:         u.Name,
			PasswordHash: u.PasswordHash,
			Accounts:     []string{},
		}
	}
	for _, a := range accounts {
		if u, ok := doc.Users[a.OwnerCPF]; ok && a.OwnerPosition >= 0 {
			u.Accounts = append(u.Accounts, a.Number)
			doc.Users[a.OwnerCPF] = u
		}
		doc.Accounts[a.Number] = dto.AccountRecord{
			Number:                a.Number,
			Agency:                a.Agency,
			OwnerCPF:              a.OwnerCPF,
			Balance:               a.Balance,
			Transactions:          []dto.TransactionRecord{},
			DailyWithdrawLimit:    a.DailyWithdrawLimit,
			PerWithdrawLimitValue: a.PerWithdrawLimitValue,
		}
	}
	for _, t := range txs {
		acc, ok := doc.Accounts[t.AccountNumber]
		if !ok {
			s.logger.Warn("skipping orphan transaction", "id", t.ID, "account", t.AccountNumber)
			continue
		}
		acc.Transactions = append(acc.Transactions, dto.TransactionRecord{
			ID:        t.ID,
			Kind:      t.Kind,
			Amount:    t.Amount,
			Timestamp: t.Timestamp,
			Note:      t.Note,
		})
		doc.Accounts[t.AccountNumber] = acc
	}

	s.logger.Info("snapshot loaded", "store", "sql", "users", len(users), "accounts", len(accounts))
	return doc, nil
}

// Save replaces the stored state with doc.
func (s *GormStore) Save(ctx context.Context, doc *dto.Document) error {
	users, accounts, txs := toModels(doc)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{&Transaction{}, &Account{}, &User{}} {
			if err := wipe.Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		if len(users) > 0 {
			if err := tx.CreateInBatches(users, batchSize).Error; err != nil {
				return fmt.Errorf("insert users: %w", err)
			}
		}
		if len(accounts) > 0 {
			if err := tx.CreateInBatches(accounts, batchSize).Error; err != nil {
				return fmt.Errorf("insert accounts: %w", err)
			}
		}
		if len(txs) > 0 {
			if err := tx.CreateInBatches(txs, batchSize).Error; err != nil {
				return fmt.Errorf("insert transactions: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("snapshot saved", "store", "sql", "users", len(users), "accounts", len(accounts))
	return nil
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toModels(doc *dto.Document) ([]User, []Account, []Transaction) {
	var (
		users     []User
		accounts  []Account
		txs       []Transaction
		positions = map[string]int{}
	)
	for _, cpf := range slices.Sorted(maps.Keys(doc.Users)) {
		u := doc.Users[cpf]
		users = append(users, User{CPF: u.CPF, Name: u.Name, PasswordHash: u.PasswordHash})
		for i, n := range u.Accounts {
			positions[n] = i
		}
	}
	for _, number := range slices.Sorted(maps.Keys(doc.Accounts)) {
		a := doc.Accounts[number]
		pos, ok := positions[a.Number]
		if !ok {
			pos = -1
		}
		accounts = append(accounts, Account{
			Number:                a.Number,
			Agency:                a.Agency,
			OwnerCPF:              a.OwnerCPF,
			OwnerPosition:         pos,
			Balance:               a.Balance,
			DailyWithdrawLimit:    a.DailyWithdrawLimit,
			PerWithdrawLimitValue: a.PerWithdrawLimitValue,
		})
		for i, t := range a.Transactions {
			id := t.ID
			if id == "" {
				id = uuid.NewString()
			}
			txs = append(txs, Transaction{
				ID:            id,
				AccountNumber: a.Number,
				Position:      i,
				Kind:          t.Kind,
				Amount:        t.Amount,
				Timestamp:     t.Timestamp,
				Note:          t.Note,
			})
		}
	}
	return users, accounts, txs
}
