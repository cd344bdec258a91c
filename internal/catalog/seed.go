package catalog

// SampleServices returns the demo catalog. IDs are stable so that deep links
// (?service=1) keep working across restarts of a demo instance.
func SampleServices() []*Service {
	return []*Service{
		{ID: "1", Title: "Premium Car Wash", Category: CategoryCarWash, Price: 49.99, DurationMinutes: 60, Description: "Full exterior and interior wash with premium detailing finish."},
		{ID: "2", Title: "Quick Car Wash", Category: CategoryCarWash, Price: 19.99, DurationMinutes: 30, Description: "Exterior wash and dry, in and out in half an hour."},
		{ID: "3", Title: "Interior Detailing", Category: CategoryCarWash, Price: 89.99, DurationMinutes: 120, Description: "Deep clean of seats, carpets, dashboard and trim."},
		{ID: "4", Title: "Standard Home Cleaning", Category: CategoryHomeCleaning, Price: 79.99, DurationMinutes: 120, Description: "General cleaning of all rooms, kitchen and bathrooms."},
		{ID: "5", Title: "Deep Home Cleaning", Category: CategoryHomeCleaning, Price: 129.99, DurationMinutes: 240, Description: "Thorough top-to-bottom clean including appliances and baseboards."},
		{ID: "6", Title: "Window Cleaning", Category: CategoryHomeCleaning, Price: 59.99, DurationMinutes: 90, Description: "Interior and exterior window cleaning, streak free."},
		{ID: "7", Title: "Haircut & Styling", Category: CategoryPersonalCare, Price: 39.99, DurationMinutes: 45, Description: "Professional cut and style at your home."},
		{ID: "8", Title: "Massage Therapy", Category: CategoryPersonalCare, Price: 69.99, DurationMinutes: 60, Description: "Relaxing full-body massage by a certified therapist."},
		{ID: "9", Title: "Manicure & Pedicure", Category: CategoryPersonalCare, Price: 49.99, DurationMinutes: 75, Description: "Complete nail care treatment."},
	}
}

// SampleProviders returns the demo provider roster matching SampleServices.
func SampleProviders() []*Provider {
	return []*Provider{
		{ID: "1", DisplayName: "Jane Smith", ServiceIDs: []string{"1", "2", "3"}, Rating: 4.9},
		{ID: "2", DisplayName: "Michael Johnson", ServiceIDs: []string{"1", "2"}, Rating: 4.7},
		{ID: "3", DisplayName: "Sarah Williams", ServiceIDs: []string{"4", "5", "6"}, Rating: 4.8},
		{ID: "4", DisplayName: "David Brown", ServiceIDs: []string{"4", "5"}, Rating: 4.6},
		{ID: "5", DisplayName: "Linda Rodriguez", ServiceIDs: []string{"7", "8", "9"}, Rating: 4.9},
		{ID: "6", DisplayName: "Robert Davis", ServiceIDs: []string{"8", "9"}, Rating: 4.8},
	}
}
