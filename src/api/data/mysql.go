package data

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/bandhall/bandhall/src/api/types"
)

func MustMySQL(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	return db
}

// Migrate keeps the schema in step with the model structs. The
// composite unique index on proposal_votes is what makes vote upsert
// race-free, so migration failure is fatal.
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&types.User{},
		&types.Band{},
		&types.BandMember{},
		&types.Proposal{},
		&types.ProposalVote{},
		&types.Setting{},
	)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
}
