package model

// RentalRecord is one row from the rental-rate dataset.
type RentalRecord struct {
	VehicleType string
	DailyRate   float64
}

// VehicleClass is one of the five simplified vehicle classes the ground
// model prices.
type VehicleClass string

// Vehicle classes.
const (
	ClassCar     VehicleClass = "car"
	ClassMinivan VehicleClass = "minivan"
	ClassSUV     VehicleClass = "suv"
	ClassTruck   VehicleClass = "truck"
	ClassVan     VehicleClass = "van"
)

// VehicleClasses lists all classes in a stable order.
var VehicleClasses = []VehicleClass{ClassCar, ClassMinivan, ClassSUV, ClassTruck, ClassVan}
