package domain

// Flight is a catalog entry. It is defined at startup and never persisted.
type Flight struct {
	Number string `yaml:"flight_no" json:"flight_no"`
	From   string `yaml:"from" json:"from"`
	To     string `yaml:"to" json:"to"`
	Price  int64  `yaml:"price" json:"price"`
	Date   string `yaml:"date" json:"date"`
}

const FlightDateLayout = "2006-01-02 15:04"
