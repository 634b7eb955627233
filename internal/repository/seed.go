package repository

import (
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/model"

	"github.com/shopspring/decimal"
)

// Demo data for a single salon. The server loads it at startup; there is no
// persistence layer.

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// DemoPINs are the login PINs of the seeded employees.
var DemoPINs = map[string]string{
	"e1": "1111",
	"e2": "2222",
	"e3": "3333",
	"e4": "4444",
}

func SeedProducts() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Professional Shampoo", Category: "Hair Care", Price: d(299), Cost: d(180), Stock: 45, ReorderPoint: 20,
			Barcode: "8901234567890", Supplier: "Beauty Supply Co", Description: "Premium moisturizing shampoo for all hair types", ExpiryDate: "2025-12-31"},
		{ID: "p2", Name: "Hair Conditioner", Category: "Hair Care", Price: d(349), Cost: d(210), Stock: 32, ReorderPoint: 15,
			Barcode: "8901234567891", Supplier: "Beauty Supply Co", Description: "Deep conditioning treatment", ExpiryDate: "2025-10-30"},
		{ID: "p3", Name: "Hair Serum", Category: "Hair Care", Price: d(599), Cost: d(380), Stock: 8, ReorderPoint: 10,
			Barcode: "8901234567892", Supplier: "Premium Hair Products", Description: "Anti-frizz hair serum", ExpiryDate: "2025-08-15"},
		{ID: "p4", Name: "Face Cream", Category: "Skin Care", Price: d(899), Cost: d(520), Stock: 25, ReorderPoint: 12,
			Barcode: "8901234567893", Supplier: "Skincare Solutions", Description: "Anti-aging face cream", ExpiryDate: "2025-11-20"},
		{ID: "p5", Name: "Face Mask", Category: "Skin Care", Price: d(199), Cost: d(95), Stock: 60, ReorderPoint: 25,
			Barcode: "8901234567894", Supplier: "Skincare Solutions", Description: "Hydrating face mask", ExpiryDate: "2025-09-10"},
		{ID: "p6", Name: "Hair Oil", Category: "Hair Care", Price: d(249), Cost: d(140), Stock: 5, ReorderPoint: 15,
			Barcode: "8901234567895", Supplier: "Natural Care Ltd", Description: "Nourishing hair oil", ExpiryDate: "2026-01-15"},
	}
}

func SeedServices() []model.Service {
	return []model.Service{
		{ID: "s1", Name: "Haircut & Styling", Category: "Hair", Price: d(799), DurationMinutes: 45, Commission: d(20), Description: "Professional haircut with styling"},
		{ID: "s2", Name: "Hair Wash & Blow Dry", Category: "Hair", Price: d(399), DurationMinutes: 30, Commission: d(15), Description: "Hair wash with professional blow dry"},
		{ID: "s3", Name: "Hair Coloring", Category: "Hair", Price: d(2499), DurationMinutes: 120, Commission: d(25), Description: "Complete hair coloring service"},
		{ID: "s4", Name: "Deep Conditioning", Category: "Hair", Price: d(699), DurationMinutes: 60, Commission: d(18), Description: "Intensive hair conditioning treatment"},
		{ID: "s5", Name: "Facial Treatment", Category: "Skin", Price: d(1299), DurationMinutes: 75, Commission: d(22), Description: "Complete facial with cleansing and moisturizing"},
		{ID: "s6", Name: "Eyebrow Threading", Category: "Beauty", Price: d(199), DurationMinutes: 15, Commission: d(30), Description: "Precision eyebrow shaping"},
		{ID: "s7", Name: "Manicure", Category: "Beauty", Price: d(599), DurationMinutes: 45, Commission: d(20), Description: "Complete nail care and polish"},
		{ID: "s8", Name: "Pedicure", Category: "Beauty", Price: d(799), DurationMinutes: 60, Commission: d(20), Description: "Foot care and nail polish"},
	}
}

func SeedPackages() []model.Package {
	return []model.Package{
		{ID: "pkg1", Name: "Bridal Package", ServiceIDs: []string{"s1", "s3", "s5", "s7"}, OriginalPrice: d(4796), PackagePrice: d(3999),
			DurationMinutes: 240, Description: "Complete bridal makeover package"},
		{ID: "pkg2", Name: "Monthly Maintenance", ServiceIDs: []string{"s1", "s2", "s4"}, OriginalPrice: d(1897), PackagePrice: d(1599),
			DurationMinutes: 135, Description: "Monthly hair care package"},
		{ID: "pkg3", Name: "Spa Day", ServiceIDs: []string{"s5", "s7", "s8"}, OriginalPrice: d(2697), PackagePrice: d(2199),
			DurationMinutes: 180, Description: "Relaxing spa experience"},
	}
}

func SeedGiftCards() []model.GiftCard {
	return []model.GiftCard{
		{ID: "gc500", Name: "Gift Card 500", Value: d(500)},
		{ID: "gc1000", Name: "Gift Card 1000", Value: d(1000)},
		{ID: "gc2000", Name: "Gift Card 2000", Value: d(2000)},
	}
}

func SeedCustomers() []model.Customer {
	return []model.Customer{
		{ID: "c1", Name: "Emma Watson", Phone: "+91 90123 45678", Email: "emma@email.com", Type: "member", LastVisit: "2024-01-20",
			TotalSpent: d(15600), Preferences: []string{"Hair Coloring", "Facial"}, Allergies: []string{"Sulfates"},
			Notes: "Prefers organic products, sensitive skin", MembershipType: "platinum", LoyaltyPoints: 1560, GiftCardBalance: d(500)},
		{ID: "c2", Name: "John Smith", Phone: "+91 90123 45679", Email: "john@email.com", Type: "regular", LastVisit: "2024-01-18",
			TotalSpent: d(4200), Preferences: []string{"Haircut"}, Notes: "Comes every 3 weeks", LoyaltyPoints: 420, GiftCardBalance: d(0)},
		{ID: "c3", Name: "Lisa Chen", Phone: "+91 90123 45680", Type: "new", TotalSpent: d(0), GiftCardBalance: d(0)},
		{ID: "c4", Name: "Raj Patel", Phone: "+91 90123 45681", Email: "raj@email.com", Type: "member", LastVisit: "2024-01-15",
			TotalSpent: d(8900), Preferences: []string{"Hair Wash", "Haircut"}, Allergies: []string{"Parabens"},
			Notes: "Works nearby, prefers evening appointments", MembershipType: "basic", LoyaltyPoints: 890, GiftCardBalance: d(200)},
	}
}

// SeedEmployees starts everyone clocked out; shifts are tracked from server start.
func SeedEmployees() []model.Employee {
	return []model.Employee{
		{ID: "e1", Name: "Sarah Johnson", Title: "Senior Stylist", Role: model.RoleManager, Phone: "+91 98765 43210", Email: "sarah@salon.com",
			Commission: d(25), Specialties: []string{"Hair", "Beauty"}, ExperienceYears: 8, Status: model.StatusClockedOut},
		{ID: "e2", Name: "Mike Chen", Title: "Hair Colorist", Role: model.RoleStylist, Phone: "+91 98765 43211", Email: "mike@salon.com",
			Commission: d(30), Specialties: []string{"Hair"}, ExperienceYears: 12, Status: model.StatusClockedOut},
		{ID: "e3", Name: "Priya Sharma", Title: "Beautician", Role: model.RoleStylist, Phone: "+91 98765 43212", Email: "priya@salon.com",
			Commission: d(22), Specialties: []string{"Skin", "Beauty", "Massage"}, ExperienceYears: 5, Status: model.StatusClockedOut},
		{ID: "e4", Name: "David Wilson", Title: "Junior Stylist", Role: model.RoleStylist, Phone: "+91 98765 43213", Email: "david@salon.com",
			Commission: d(18), Specialties: []string{"Hair"}, ExperienceYears: 2, Status: model.StatusClockedOut},
	}
}

func SeedAppointments() []model.Appointment {
	return []model.Appointment{
		{ID: "apt1", CustomerID: "c1", ServiceIDs: []string{"s3"}, EmployeeID: "e2", Date: "2024-01-25", Time: "10:00", DurationMinutes: 120,
			Status: model.AppointmentScheduled, Notes: "First time coloring, allergic to sulfates"},
		{ID: "apt2", CustomerID: "c2", ServiceIDs: []string{"s1"}, EmployeeID: "e1", Date: "2024-01-25", Time: "11:30", DurationMinutes: 45,
			Status: model.AppointmentInProgress, Notes: "Regular customer"},
		{ID: "apt3", CustomerID: "c3", ServiceIDs: []string{"s5"}, EmployeeID: "e3", Date: "2024-01-25", Time: "14:00", DurationMinutes: 75,
			Status: model.AppointmentScheduled, Notes: "New customer, first facial"},
		{ID: "apt4", CustomerID: "c4", ServiceIDs: []string{"s7"}, EmployeeID: "e3", Date: "2024-01-25", Time: "15:30", DurationMinutes: 45,
			Status: model.AppointmentScheduled, Notes: "Regular manicure appointment"},
		{ID: "apt5", CustomerID: "c1", ServiceIDs: []string{"s8"}, EmployeeID: "e4", Date: "2024-01-25", Time: "16:30", DurationMinutes: 60,
			Status: model.AppointmentScheduled, Notes: "VIP customer pedicure"},
	}
}

func SeedWaitlist() []model.WaitlistEntry {
	added := time.Date(2024, 1, 24, 9, 0, 0, 0, time.UTC)
	return []model.WaitlistEntry{
		{ID: "w1", CustomerName: "Sarah Miller", Phone: "+91 98765 00001", ServiceID: "s3", PreferredEmployeeID: "e2",
			PreferredDate: "2024-01-25", TimeFrame: "morning", Priority: model.PriorityHigh, AddedAt: added},
		{ID: "w2", CustomerName: "Alex Johnson", Phone: "+91 98765 00002", ServiceID: "s1",
			PreferredDate: "2024-01-24", TimeFrame: "afternoon", Priority: model.PriorityNormal, AddedAt: added.Add(time.Hour)},
	}
}
