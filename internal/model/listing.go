package model

// Listing is a rental listing normalized for the wire format. String fields
// that were blank in the source data carry the "NA" sentinel; the numeric
// price is always present because unpriced rows never survive filtering.
type Listing struct {
	ID               string  `json:"id"`
	FormattedAddress string  `json:"formattedAddress"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	ZipCode          string  `json:"zipCode"`
	PropertyType     string  `json:"propertyType"`
	Bedrooms         string  `json:"bedrooms"`
	Bathrooms        string  `json:"bathrooms"`
	SquareFootage    string  `json:"squareFootage"`
	YearBuilt        string  `json:"yearBuilt"`
	Status           string  `json:"status"`
	Price            float64 `json:"price"`
	ListingWebsite   string  `json:"listingWebsite"`
}
