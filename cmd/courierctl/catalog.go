package main

import (
	"fmt"

	"courierhub/internal/domain/entity"
	"courierhub/internal/domain/tracking"
	"courierhub/internal/usecase"

	"github.com/google/uuid"
)

type demoAccount struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
	Company  string
	Phone    string
}

var demoAccounts = []demoAccount{
	{Name: "Admin User", Email: "admin@courier.com", Password: "admin123", Role: entity.RoleAdmin, Company: "Courier Dashboard Inc.", Phone: "+91 9876543210"},
	{Name: "Business Owner", Email: "user@business.com", Password: "user123", Role: entity.RoleBusiness, Company: "TechMart Electronics", Phone: "+91 9876543211"},
	{Name: "Staff Member", Email: "staff@courier.com", Password: "staff123", Role: entity.RoleStaff, Company: "Courier Dashboard Inc.", Phone: "+91 9876543212"},
}

// demoCouriers returns a fresh copy of the demo catalogue.
func demoCouriers() []*entity.Courier {
	return []*entity.Courier{
		{
			Name:        "Delhivery",
			Code:        "DEL",
			Logo:        "/couriers/delhivery.png",
			Description: "India's largest fully-integrated logistics provider",
			IsActive:    true,
			Pricing:     entity.CourierPricing{BaseRate: 40, WeightRate: 25, ExpressMultiplier: 1.5, OvernightMultiplier: 2.2, CODCharges: 35, FuelSurcharge: 15},
			Coverage:    entity.CourierCoverage{Domestic: true},
			Performance: entity.CourierPerformance{AvgDeliveryDays: 3, DeliverySuccessRate: 94, AvgRating: 4.2},
			Contact:     entity.CourierContact{SupportEmail: "support@delhivery.com", SupportPhone: "1800-123-4567", Website: "https://www.delhivery.com"},
		},
		{
			Name:        "BlueDart",
			Code:        "BLU",
			Logo:        "/couriers/bluedart.png",
			Description: "South Asia's premier courier and logistics company",
			IsActive:    true,
			Pricing:     entity.CourierPricing{BaseRate: 55, WeightRate: 30, ExpressMultiplier: 1.4, OvernightMultiplier: 2.0, CODCharges: 45, FuelSurcharge: 18},
			Coverage:    entity.CourierCoverage{Domestic: true, International: true},
			Performance: entity.CourierPerformance{AvgDeliveryDays: 2, DeliverySuccessRate: 97, AvgRating: 4.5},
			Contact:     entity.CourierContact{SupportEmail: "support@bluedart.com", SupportPhone: "1800-233-1234", Website: "https://www.bluedart.com"},
		},
		{
			Name:        "DTDC",
			Code:        "DTD",
			Logo:        "/couriers/dtdc.png",
			Description: "Delivering happiness across India",
			IsActive:    true,
			Pricing:     entity.CourierPricing{BaseRate: 35, WeightRate: 20, ExpressMultiplier: 1.6, OvernightMultiplier: 2.5, CODCharges: 30, FuelSurcharge: 12},
			Coverage:    entity.CourierCoverage{Domestic: true},
			Performance: entity.CourierPerformance{AvgDeliveryDays: 4, DeliverySuccessRate: 91, AvgRating: 3.9},
			Contact:     entity.CourierContact{SupportEmail: "support@dtdc.com", SupportPhone: "1800-456-7890", Website: "https://www.dtdc.com"},
		},
	}
}

type demoCity struct {
	City    string
	State   string
	Pincode string
}

var demoCities = []demoCity{
	{City: "Mumbai", State: "Maharashtra", Pincode: "400001"},
	{City: "Delhi", State: "Delhi", Pincode: "110001"},
	{City: "Bangalore", State: "Karnataka", Pincode: "560001"},
	{City: "Chennai", State: "Tamil Nadu", Pincode: "600001"},
	{City: "Hyderabad", State: "Telangana", Pincode: "500001"},
	{City: "Pune", State: "Maharashtra", Pincode: "411001"},
	{City: "Kolkata", State: "West Bengal", Pincode: "700001"},
	{City: "Ahmedabad", State: "Gujarat", Pincode: "380001"},
}

var demoNames = []string{
	"Rahul Sharma", "Priya Patel", "Amit Kumar", "Sneha Gupta", "Vikram Singh",
	"Ananya Reddy", "Rohan Mehta", "Divya Nair", "Karthik Iyer", "Neha Verma",
}

var (
	demoServiceTypes = []entity.ServiceType{entity.ServiceStandard, entity.ServiceExpress, entity.ServiceOvernight, entity.ServiceEconomy}
	demoCategories   = []entity.PackageCategory{
		entity.CategoryDocuments, entity.CategoryElectronics, entity.CategoryClothing,
		entity.CategoryFood, entity.CategoryFragile, entity.CategoryOther,
	}
)

func pick[T any](items []T, intN tracking.IntN) T {
	return items[intN(len(items))]
}

// demoShipment builds the i-th random booking for courierID. The rate engine prices it.
func demoShipment(i int, courierID uuid.UUID, intN tracking.IntN) usecase.CreateShipmentInput {
	from, to := pick(demoCities, intN), pick(demoCities, intN)
	weight := float64(5+intN(100)) / 10

	input := usecase.CreateShipmentInput{
		CourierID: courierID,
		Sender: entity.Party{
			Name:    pick(demoNames, intN),
			Phone:   fmt.Sprintf("+91 98%08d", intN(100000000)),
			Email:   fmt.Sprintf("sender%d@example.com", i),
			Address: fmt.Sprintf("%d, Block %c", intN(500)+1, 'A'+rune(intN(10))),
			City:    from.City,
			State:   from.State,
			Pincode: from.Pincode,
		},
		Receiver: entity.Party{
			Name:    pick(demoNames, intN),
			Phone:   fmt.Sprintf("+91 98%08d", intN(100000000)),
			Email:   fmt.Sprintf("receiver%d@example.com", i),
			Address: fmt.Sprintf("%d, Sector %d", intN(500)+1, intN(50)+1),
			City:    to.City,
			State:   to.State,
			Pincode: to.Pincode,
		},
		Package: entity.Package{
			WeightKg:      weight,
			LengthCm:      float64(intN(40) + 10),
			WidthCm:       float64(intN(30) + 10),
			HeightCm:      float64(intN(20) + 5),
			Description:   fmt.Sprintf("Package %d", i+1),
			DeclaredValue: float64(intN(5000) + 500),
			Category:      pick(demoCategories, intN),
		},
		ServiceType: pick(demoServiceTypes, intN),
		PaymentMode: entity.PaymentPrepaid,
	}
	if intN(10) >= 7 {
		input.PaymentMode = entity.PaymentCOD
		input.CODAmount = float64(intN(2000) + 500)
	}

	return input
}
