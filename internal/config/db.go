package config

const (
	// EngineMySQL selects the mysql gorm driver.
	EngineMySQL = "mysql"
	// EngineSQLite selects the pure-Go sqlite gorm driver.
	EngineSQLite = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string // mysql or sqlite
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string // database name, or the file path for sqlite
}
