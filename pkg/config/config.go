package config

import (
	"github.com/shopspring/decimal"
)

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"4"`
	Format     string `envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[bankcli]"`
}

// Store selects where the bank document is kept.
type Store struct {
	Driver string `envconfig:"DRIVER" default:"file" validate:"oneof=file sql redis"`
	File   string `envconfig:"FILE" default:"bank_data.json" validate:"required_if=Driver file"`
}

type DB struct {
	Dialect string `envconfig:"DIALECT" default:"sqlite" validate:"oneof=sqlite postgres"`
	Url     string `envconfig:"URL" default:"bank_data.db"`
}

type Redis struct {
	URL string `envconfig:"URL" default:"redis://localhost:6379/0"`
	Key string `envconfig:"KEY" default:"bankcli:snapshot" validate:"required"`
}

// Ledger holds the values new accounts start with, and the fallbacks for
// stored accounts that carry no limits.
type Ledger struct {
	Agency             string          `envconfig:"AGENCY" default:"0001" validate:"required"`
	DailyWithdrawLimit int             `envconfig:"DAILY_WITHDRAW_LIMIT" default:"3" validate:"gte=0"`
	PerWithdrawLimit   decimal.Decimal `envconfig:"PER_WITHDRAW_LIMIT" default:"500.00"`
}

type Auth struct {
	BcryptCost int `envconfig:"BCRYPT_COST" default:"10" validate:"gte=4,lte=31"`
}

type Export struct {
	Dir string `envconfig:"DIR" default:"."`
}

type App struct {
	Env    string  `envconfig:"APP_ENV" default:"development"`
	Log    *Log    `envconfig:"LOG"`
	Store  *Store  `envconfig:"STORE"`
	DB     *DB     `envconfig:"DATABASE"`
	Redis  *Redis  `envconfig:"REDIS"`
	Ledger *Ledger `envconfig:"LEDGER"`
	Auth   *Auth   `envconfig:"AUTH"`
	Export *Export `envconfig:"EXPORT"`
}
