package config

const (
	// DefaultDatabasePath is the default path for the catalog database.
	DefaultDatabasePath = "./bibliotheque.db"

	// DefaultLoanPeriodDays is the default lending period.
	DefaultLoanPeriodDays = 14
)
