package services

import (
	"context"
	"fmt"

	"freightquote/internal/models"
	"freightquote/internal/repositories/interfaces"
	"freightquote/pkg/logger"
)

// SeedService loads reference data (ports, airports, container types) into
// empty collections at startup. Collections that already hold documents are
// left untouched, so a restart never duplicates data.
type SeedService interface {
	SeedReferenceData(ctx context.Context) error
}

type seedService struct {
	locationRepo      interfaces.LocationRepository
	containerTypeRepo interfaces.ContainerTypeRepository
	logger            *logger.Logger
}

func NewSeedService(locationRepo interfaces.LocationRepository, containerTypeRepo interfaces.ContainerTypeRepository, log *logger.Logger) SeedService {
	return &seedService{
		locationRepo:      locationRepo,
		containerTypeRepo: containerTypeRepo,
		logger:            log,
	}
}

func (s *seedService) SeedReferenceData(ctx context.Context) error {
	if err := s.seedLocations(ctx); err != nil {
		return fmt.Errorf("failed to seed locations: %w", err)
	}
	if err := s.seedContainerTypes(ctx); err != nil {
		return fmt.Errorf("failed to seed container types: %w", err)
	}
	return nil
}

func (s *seedService) seedLocations(ctx context.Context) error {
	count, err := s.locationRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	locations := defaultLocations()
	for _, location := range locations {
		if err := s.locationRepo.Create(ctx, location); err != nil {
			return err
		}
	}

	s.logger.WithField("count", len(locations)).Info("seeded locations")
	return nil
}

func (s *seedService) seedContainerTypes(ctx context.Context) error {
	count, err := s.containerTypeRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	containerTypes := defaultContainerTypes()
	for _, containerType := range containerTypes {
		containerType.RecalculateDerivedValues()
		if err := s.containerTypeRepo.Create(ctx, containerType); err != nil {
			return err
		}
	}

	s.logger.WithField("count", len(containerTypes)).Info("seeded container types")
	return nil
}

func seedLocation(code, name, country, countryCode string, locType models.LocationType) *models.Location {
	return &models.Location{
		Code:        code,
		Name:        name,
		Country:     country,
		CountryCode: countryCode,
		Type:        locType,
		IsActive:    true,
	}
}

func defaultLocations() []*models.Location {
	return []*models.Location{
		// Major sea ports
		seedLocation("SHP_USNY", "Port of New York", "United States", "USA", models.LocationTypeSeaPort),
		seedLocation("SHP_USLB", "Port of Long Beach", "United States", "USA", models.LocationTypeSeaPort),
		seedLocation("SHP_CNSHG", "Port of Shanghai", "China", "CHN", models.LocationTypeSeaPort),
		seedLocation("SHP_CNSZN", "Port of Shenzhen", "China", "CHN", models.LocationTypeSeaPort),
		seedLocation("SHP_SGSIN", "Port of Singapore", "Singapore", "SGP", models.LocationTypeSeaPort),
		seedLocation("SHP_NLRTM", "Port of Rotterdam", "Netherlands", "NLD", models.LocationTypeSeaPort),
		seedLocation("SHP_DEHAM", "Port of Hamburg", "Germany", "DEU", models.LocationTypeSeaPort),
		seedLocation("SHP_AEJEA", "Port of Jebel Ali", "UAE", "ARE", models.LocationTypeSeaPort),
		seedLocation("SHP_JPYOK", "Port of Yokohama", "Japan", "JPN", models.LocationTypeSeaPort),

		// Indian sea ports
		seedLocation("SHP_INMUN", "JNPT Mumbai (Nhava Sheva)", "India", "IND", models.LocationTypeSeaPort),
		seedLocation("SHP_INMAA", "Chennai Port", "India", "IND", models.LocationTypeSeaPort),
		seedLocation("SHP_INCCU", "Kolkata Port", "India", "IND", models.LocationTypeSeaPort),
		seedLocation("SHP_INKOC", "Kochi Port", "India", "IND", models.LocationTypeSeaPort),
		seedLocation("SHP_INVTZ", "Visakhapatnam Port", "India", "IND", models.LocationTypeSeaPort),
		seedLocation("SHP_INMRM", "Mumbai Port Trust", "India", "IND", models.LocationTypeSeaPort),
		seedLocation("SHP_INKAN", "Kandla Port", "India", "IND", models.LocationTypeSeaPort),
		seedLocation("SHP_INPAV", "Paradip Port", "India", "IND", models.LocationTypeSeaPort),
		seedLocation("SHP_INHAL", "Haldia Port", "India", "IND", models.LocationTypeSeaPort),
		seedLocation("SHP_INENY", "Ennore Port", "India", "IND", models.LocationTypeSeaPort),
		seedLocation("SHP_INTUT", "Tuticorin Port", "India", "IND", models.LocationTypeSeaPort),
		seedLocation("SHP_INMNG", "Mangalore Port", "India", "IND", models.LocationTypeSeaPort),
		seedLocation("SHP_INGOA", "Mormugao Port (Goa)", "India", "IND", models.LocationTypeSeaPort),

		// Major international airports
		seedLocation("AIR_USLAX", "Los Angeles International Airport", "United States", "USA", models.LocationTypeAirport),
		seedLocation("AIR_USJFK", "John F. Kennedy International Airport", "United States", "USA", models.LocationTypeAirport),
		seedLocation("AIR_GBLON", "Heathrow Airport", "United Kingdom", "GBR", models.LocationTypeAirport),
		seedLocation("AIR_DEFRM", "Frankfurt Airport", "Germany", "DEU", models.LocationTypeAirport),
		seedLocation("AIR_NLAMM", "Amsterdam Airport Schiphol", "Netherlands", "NLD", models.LocationTypeAirport),
		seedLocation("AIR_AEDXB", "Dubai International Airport", "UAE", "ARE", models.LocationTypeAirport),
		seedLocation("AIR_CNPEK", "Beijing Capital International Airport", "China", "CHN", models.LocationTypeAirport),
		seedLocation("AIR_CNPVG", "Shanghai Pudong International Airport", "China", "CHN", models.LocationTypeAirport),
		seedLocation("AIR_SGSIN", "Singapore Changi Airport", "Singapore", "SGP", models.LocationTypeAirport),
		seedLocation("AIR_JPNRT", "Narita International Airport", "Japan", "JPN", models.LocationTypeAirport),

		// Indian international airports
		seedLocation("AIR_INDEL", "Indira Gandhi International Airport (Delhi)", "India", "IND", models.LocationTypeAirport),
		seedLocation("AIR_INMUM", "Chhatrapati Shivaji Maharaj International Airport (Mumbai)", "India", "IND", models.LocationTypeAirport),
		seedLocation("AIR_INBLR", "Kempegowda International Airport (Bangalore)", "India", "IND", models.LocationTypeAirport),
		seedLocation("AIR_INMAA", "Chennai International Airport", "India", "IND", models.LocationTypeAirport),
		seedLocation("AIR_INCCU", "Netaji Subhash Chandra Bose International Airport (Kolkata)", "India", "IND", models.LocationTypeAirport),
		seedLocation("AIR_INHYD", "Rajiv Gandhi International Airport (Hyderabad)", "India", "IND", models.LocationTypeAirport),
		seedLocation("AIR_INKOC", "Cochin International Airport (Kochi)", "India", "IND", models.LocationTypeAirport),
		seedLocation("AIR_INAHD", "Sardar Vallabhbhai Patel International Airport (Ahmedabad)", "India", "IND", models.LocationTypeAirport),
		seedLocation("AIR_INGOI", "Dabolim Airport (Goa)", "India", "IND", models.LocationTypeAirport),
		seedLocation("AIR_INPNE", "Pune Airport", "India", "IND", models.LocationTypeAirport),
	}
}

func seedContainerType(code, name, description string, length, width, height, maxGross, tare float64, refrigerated bool) *models.ContainerType {
	return &models.ContainerType{
		Code:             code,
		Name:             name,
		Description:      description,
		LengthMeters:     length,
		WidthMeters:      width,
		HeightMeters:     height,
		MaxGrossWeightKG: maxGross,
		TareWeightKG:     tare,
		IsRefrigerated:   refrigerated,
		IsActive:         true,
	}
}

func defaultContainerTypes() []*models.ContainerType {
	return []*models.ContainerType{
		seedContainerType("20GP", "20ft General Purpose",
			"Standard 20-foot dry container for general cargo",
			5.90, 2.35, 2.39, 30480, 2230, false),
		seedContainerType("20HC", "20ft High Cube",
			"20-foot high cube container with extra height",
			5.90, 2.35, 2.69, 30480, 2230, false),
		seedContainerType("40GP", "40ft General Purpose",
			"Standard 40-foot dry container for general cargo",
			12.03, 2.35, 2.39, 30480, 3740, false),
		seedContainerType("40HC", "40ft High Cube",
			"40-foot high cube container with extra height",
			12.03, 2.35, 2.69, 30480, 3740, false),
		seedContainerType("20RF", "20ft Refrigerated",
			"20-foot refrigerated container for temperature-controlled cargo",
			5.44, 2.29, 2.27, 30480, 3080, true),
		seedContainerType("40RF", "40ft Refrigerated",
			"40-foot refrigerated container for temperature-controlled cargo",
			11.56, 2.29, 2.27, 30480, 4800, true),
		seedContainerType("40RH", "40ft Refrigerated High Cube",
			"40-foot refrigerated high cube container",
			11.56, 2.29, 2.57, 30480, 4800, true),
		seedContainerType("20OT", "20ft Open Top",
			"20-foot open top container for oversized cargo",
			5.90, 2.35, 2.39, 30480, 2300, false),
		seedContainerType("40OT", "40ft Open Top",
			"40-foot open top container for oversized cargo",
			12.03, 2.35, 2.39, 30480, 3900, false),
		seedContainerType("20FR", "20ft Flat Rack",
			"20-foot flat rack container for heavy or oversized cargo",
			5.90, 2.35, 2.39, 45000, 2360, false),
		seedContainerType("40FR", "40ft Flat Rack",
			"40-foot flat rack container for heavy or oversized cargo",
			12.03, 2.35, 2.39, 45000, 5000, false),
	}
}
