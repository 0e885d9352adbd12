package model

import "github.com/samber/lo"

// ==================== Categories ====================

// Category is the listing category an ad is posted under.
type Category string

const (
	CategoryNone        Category = ""
	CategoryVehicles    Category = "Vehicles"
	CategoryProperty    Category = "Property"
	CategoryElectronics Category = "Electronics"
	CategoryPhones      Category = "Phones & Tablets"
	CategoryFashion     Category = "Fashion"
	CategoryHomeGarden  Category = "Home & Garden"
	CategoryAgriculture Category = "Agriculture"
	CategoryAnimals     Category = "Animals & Pets"
	CategoryJobs        Category = "Jobs"
	CategoryServices    Category = "Services"
)

// allCategories keeps the display order used by the storefront.
var allCategories = []Category{
	CategoryVehicles,
	CategoryProperty,
	CategoryElectronics,
	CategoryPhones,
	CategoryFashion,
	CategoryHomeGarden,
	CategoryAgriculture,
	CategoryAnimals,
	CategoryJobs,
	CategoryServices,
}

// Categories returns every known category in display order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categorySchemas[c]
	return ok
}

// IsNoPriceCategory reports whether ads in c are posted without a price.
// Jobs carry a salary instead; services are quoted on request.
func IsNoPriceCategory(c Category) bool {
	return c == CategoryJobs || c == CategoryServices
}

// ==================== Field descriptors ====================

// FieldType is the input kind the storefront renders for a field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldDate     FieldType = "date"
	FieldCheckbox FieldType = "checkbox"
)

// FieldDescriptor describes one category-specific input.
type FieldDescriptor struct {
	Name        string    `json:"name"`
	Placeholder string    `json:"placeholder"`
	Type        FieldType `json:"type"`
	Options     []string  `json:"options,omitempty"`
}

// HasOption reports whether v is an allowed value of a select field.
func (f FieldDescriptor) HasOption(v string) bool {
	return lo.Contains(f.Options, v)
}

var yesNo = []string{"Yes", "No"}

var categorySchemas = map[Category][]FieldDescriptor{
	CategoryVehicles: {
		{Name: "make", Placeholder: "Make (e.g. Toyota)", Type: FieldText},
		{Name: "model", Placeholder: "Model (e.g. Corolla)", Type: FieldText},
		{Name: "year", Placeholder: "Year of manufacture", Type: FieldNumber},
		{Name: "mileage", Placeholder: "Mileage (km)", Type: FieldNumber},
		{Name: "fuelType", Placeholder: "Fuel type", Type: FieldSelect, Options: []string{"Petrol", "Diesel", "Hybrid", "Electric"}},
		{Name: "transmission", Placeholder: "Transmission", Type: FieldSelect, Options: []string{"Manual", "Automatic"}},
	},
	CategoryProperty: {
		{Name: "propertyType", Placeholder: "Property type", Type: FieldSelect, Options: []string{"House", "Apartment", "Land", "Commercial"}},
		{Name: "bedrooms", Placeholder: "Bedrooms", Type: FieldNumber},
		{Name: "bathrooms", Placeholder: "Bathrooms", Type: FieldNumber},
		{Name: "plotSize", Placeholder: "Plot size (sqm)", Type: FieldNumber},
		{Name: "furnished", Placeholder: "Furnished", Type: FieldSelect, Options: yesNo},
	},
	CategoryElectronics: {
		{Name: "brand", Placeholder: "Brand", Type: FieldText},
		{Name: "modelNumber", Placeholder: "Model number", Type: FieldText},
		{Name: "warranty", Placeholder: "Under warranty", Type: FieldSelect, Options: yesNo},
	},
	CategoryPhones: {
		{Name: "brand", Placeholder: "Brand", Type: FieldText},
		{Name: "storage", Placeholder: "Storage", Type: FieldSelect, Options: []string{"16GB", "32GB", "64GB", "128GB", "256GB", "512GB"}},
		{Name: "ram", Placeholder: "RAM", Type: FieldSelect, Options: []string{"2GB", "3GB", "4GB", "6GB", "8GB", "12GB"}},
		{Name: "color", Placeholder: "Color", Type: FieldText},
	},
	CategoryFashion: {
		{Name: "size", Placeholder: "Size", Type: FieldText},
		{Name: "gender", Placeholder: "Gender", Type: FieldSelect, Options: []string{"Men", "Women", "Unisex", "Kids"}},
		{Name: "material", Placeholder: "Material", Type: FieldText},
	},
	CategoryHomeGarden: {
		{Name: "material", Placeholder: "Material", Type: FieldText},
		{Name: "dimensions", Placeholder: "Dimensions (e.g. 120x60cm)", Type: FieldText},
	},
	CategoryAgriculture: {
		{Name: "seedType", Placeholder: "Seed / produce type", Type: FieldText},
		{Name: "quantity", Placeholder: "Quantity", Type: FieldNumber},
		{Name: "unit", Placeholder: "Unit", Type: FieldSelect, Options: []string{"kg", "bag", "tonne", "crate", "litre"}},
		{Name: "harvestDate", Placeholder: "Harvest date", Type: FieldDate},
		{Name: "organic", Placeholder: "Organic", Type: FieldCheckbox},
	},
	CategoryAnimals: {
		{Name: "breed", Placeholder: "Breed", Type: FieldText},
		{Name: "age", Placeholder: "Age (months)", Type: FieldNumber},
		{Name: "vaccinated", Placeholder: "Vaccinated", Type: FieldCheckbox},
	},
	CategoryJobs: {
		{Name: "jobType", Placeholder: "Job type", Type: FieldSelect, Options: []string{"Full-time", "Part-time", "Contract", "Internship"}},
		{Name: "salary", Placeholder: "Monthly salary (MWK)", Type: FieldNumber},
		{Name: "experience", Placeholder: "Experience", Type: FieldSelect, Options: []string{"Entry level", "1-3 years", "3-5 years", "5+ years"}},
		{Name: "company", Placeholder: "Company name", Type: FieldText},
	},
	CategoryServices: {
		{Name: "serviceType", Placeholder: "Service type", Type: FieldText},
		{Name: "availability", Placeholder: "Availability (e.g. Mon-Fri)", Type: FieldText},
	},
}

// categoryResets names the fields blanked when a draft leaves a category.
var categoryResets = map[Category][]string{
	CategoryVehicles:    {"make", "model", "year", "mileage", "fuelType", "transmission"},
	CategoryProperty:    {"propertyType", "bedrooms", "bathrooms", "plotSize", "furnished"},
	CategoryElectronics: {"brand", "modelNumber", "warranty"},
	CategoryPhones:      {"brand", "storage", "ram", "color"},
	CategoryFashion:     {"size", "gender", "material"},
	CategoryHomeGarden:  {"material", "dimensions"},
	CategoryAgriculture: {"seedType", "quantity", "unit", "harvestDate", "organic"},
	CategoryAnimals:     {"breed", "age", "vaccinated"},
	CategoryJobs:        {"jobType", "salary", "experience", "company"},
	CategoryServices:    {"serviceType", "availability"},
}

var categorySubcategories = map[Category][]string{
	CategoryVehicles:    {"Cars", "Motorcycles", "Trucks & Buses", "Vehicle Parts"},
	CategoryProperty:    {"Houses for Rent", "Houses for Sale", "Land & Plots", "Commercial Property"},
	CategoryElectronics: {"Computers & Laptops", "TV & Audio", "Cameras", "Appliances"},
	CategoryPhones:      {"Mobile Phones", "Tablets", "Accessories"},
	CategoryFashion:     {"Clothing", "Shoes", "Bags", "Jewellery & Watches"},
	CategoryHomeGarden:  {"Furniture", "Kitchenware", "Garden", "Decor"},
	CategoryAgriculture: {"Seeds", "Produce", "Livestock Feed", "Farm Equipment"},
	CategoryAnimals:     {"Dogs", "Cats", "Poultry", "Livestock"},
	CategoryJobs:        {"Full-time Jobs", "Part-time Jobs", "Internships"},
	CategoryServices:    {"Repairs", "Cleaning", "Transport", "Events", "Tutoring"},
}

// SchemaFor returns the extra fields of c in display order.
// Unknown categories yield an empty list.
func SchemaFor(c Category) []FieldDescriptor {
	fields := categorySchemas[c]
	out := make([]FieldDescriptor, len(fields))
	copy(out, fields)
	return out
}

// LookupField finds a field of c's schema by name.
func LookupField(c Category, name string) (FieldDescriptor, bool) {
	for _, f := range categorySchemas[c] {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// ResetFieldsFor returns the fields blanked when leaving c.
func ResetFieldsFor(c Category) []string {
	names := categoryResets[c]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Subcategories returns the subcategory pick list of c.
func Subcategories(c Category) []string {
	subs := categorySubcategories[c]
	out := make([]string, len(subs))
	copy(out, subs)
	return out
}
