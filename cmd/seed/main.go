package main

import (
	"log"
	"os"

	"mdt-records-be/internal/model"
	"mdt-records-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds a small roster so the lookup fields and dashboards have something to show.
func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Officers...")
	officers := seedOfficers(db)

	log.Println("Seeding Citizens...")
	citizens := seedCitizens(db)

	if len(officers) > 0 && len(citizens) > 1 {
		log.Println("Seeding Records...")
		seedRecords(db, officers[0], citizens)
	}

	log.Println("Seeding completed!")
}

func seedOfficers(db *gorm.DB) []model.Officer {
	roster := []model.Officer{
		{Callsign: "1-ADAM-12", Name: "Pete Malloy", Rank: "Sergeant", Badge: "744", Active: true},
		{Callsign: "1-ADAM-14", Name: "Jim Reed", Rank: "Officer", Badge: "2430", Active: true},
		{Callsign: "2-LINCOLN-7", Name: "Ann Johnson", Rank: "Lieutenant", Badge: "118", Active: true},
		{Callsign: "3-MARY-2", Name: "John Smithers", Rank: "Officer", Badge: "5121", Active: false},
	}

	out := make([]model.Officer, 0, len(roster))
	for _, o := range roster {
		var existing model.Officer
		if err := db.Where("callsign = ?", o.Callsign).First(&existing).Error; err == nil {
			log.Printf("Officer '%s' already exists, skipping...", o.Callsign)
			out = append(out, existing)
			continue
		}

		if err := db.Create(&o).Error; err != nil {
			log.Printf("Error creating officer '%s': %v", o.Callsign, err)
			continue
		}
		log.Printf("Created officer: %s (%s)", o.Name, o.Callsign)
		out = append(out, o)
	}
	return out
}

func seedCitizens(db *gorm.DB) []model.Citizen {
	people := []model.Citizen{
		{FirstName: "Ann", LastName: "Jones", DateOfBirth: "1988-04-12", Phone: "555-0134"},
		{FirstName: "Anna", LastName: "Smith", DateOfBirth: "1992-11-03", Phone: "555-0178"},
		{FirstName: "Annabel", LastName: "Lee", DateOfBirth: "1979-01-19", Phone: "555-0102"},
		{FirstName: "John", LastName: "Doe", DateOfBirth: "1985-07-30", Phone: "555-0199"},
		{FirstName: "Zoë", LastName: "Martin", DateOfBirth: "2001-02-14", Phone: "555-0111"},
	}

	out := make([]model.Citizen, 0, len(people))
	for _, c := range people {
		var existing model.Citizen
		if err := db.Where("first_name = ? AND last_name = ?", c.FirstName, c.LastName).First(&existing).Error; err == nil {
			log.Printf("Citizen '%s %s' already exists, skipping...", c.FirstName, c.LastName)
			out = append(out, existing)
			continue
		}

		if err := db.Create(&c).Error; err != nil {
			log.Printf("Error creating citizen '%s %s': %v", c.FirstName, c.LastName, err)
			continue
		}
		log.Printf("Created citizen: %s %s", c.FirstName, c.LastName)
		out = append(out, c)
	}
	return out
}

func seedRecords(db *gorm.DB, officer model.Officer, citizens []model.Citizen) {
	var count int64
	db.Model(&model.Arrest{}).Count(&count)
	if count > 0 {
		log.Println("Records already present, skipping...")
		return
	}

	arrest := model.Arrest{
		CitizenId: citizens[0].Id,
		OfficerId: officer.Id,
		Charges:   "Petty theft",
		Notes:     "Detained outside the pharmacy on Vine",
		Status:    "open",
	}
	if err := db.Omit("Citizen", "Officer").Create(&arrest).Error; err != nil {
		log.Printf("Error creating arrest: %v", err)
	}

	wanted := model.WantedEntry{
		CitizenId:   citizens[1].Id,
		Reason:      "Failure to appear",
		DangerLevel: 2,
	}
	if err := db.Omit("Citizen").Create(&wanted).Error; err != nil {
		log.Printf("Error creating wanted entry: %v", err)
	}
}
