// Package models defines the core data structures for vehicle documents
// and reference lookup entities.
package models

import "errors"

// ErrNotFound is returned when an operation targets an id that does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials is returned when a login attempt matches no stored user.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Counter names accepted by the metrics updater.
const (
	CounterViews      = "views"
	CounterInterested = "interested"
)

// DefaultRole is assigned to users created without an explicit role.
const DefaultRole = "vendedor"

// Hotspot is an interactive annotation pinned to one of a vehicle's images.
// X and Y are normalized coordinates in [0, 1]; ImageIndex points into the
// vehicle's image sequence.
type Hotspot struct {
	ID         string  `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Label      string  `json:"label"`
	Detail     string  `json:"detail"`
	ImageIndex int     `json:"imageIndex"`
}

// Vehicle is the denormalized per-vehicle document. It is persisted and
// rewritten as a whole; there is no partial-field update at the store level.
// JSON tags are the wire names the storefront and admin panel expect.
type Vehicle struct {
	// ID is assigned by the store on creation and immutable thereafter.
	// It is kept out of the stored body (zeroed before encode, omitempty)
	// and filled in from the primary key on reads.
	ID int64 `json:"id,omitempty"`

	Brand   string `json:"marca"`
	Model   string `json:"modelo"`
	Version string `json:"version,omitempty"`
	Year    int    `json:"ano"`
	Price   int64  `json:"precio"`
	Mileage int64  `json:"km"`
	Owners  int    `json:"duenos"`

	Drivetrain   string `json:"traccion,omitempty"`
	Transmission string `json:"transmision"`
	Displacement string `json:"cilindrada,omitempty"`
	Fuel         string `json:"combustible"`
	BodyStyle    string `json:"carroceria"`
	Doors        int    `json:"puertas"`
	Passengers   int    `json:"pasajeros"`
	Engine       string `json:"motor,omitempty"`
	Sunroof      bool   `json:"techo"`
	Seats        string `json:"asientos"`

	SaleType    string `json:"tipoVenta"`
	Seller      string `json:"vendedor"`
	Financeable bool   `json:"financiable"`
	DownPayment int64  `json:"valorPie"`
	Status      string `json:"estado"`

	AirConditioning bool   `json:"aire"`
	Tires           string `json:"neumaticos"`
	KeyCount        int    `json:"llaves"`
	Notes           string `json:"obs"`
	Plate           string `json:"patente,omitempty"`
	Color           string `json:"color"`

	// DaysInStock is maintained by the storefront, never recomputed here.
	DaysInStock int `json:"diasStock"`
	// Views and Interested start at 0 and change only through the metrics
	// updater (single increment or bulk reset).
	Views      int64 `json:"vistas"`
	Interested int64 `json:"interesados"`

	EstimatedCommission int64 `json:"comisionEstimada"`

	Images []string `json:"imagenes"`
	Image  string   `json:"imagen,omitempty"`

	// PriceHistory entries are free-form; the store enforces no schema.
	PriceHistory []map[string]any `json:"precioHistorial"`
	Hotspots     []Hotspot        `json:"hotspots"`
}

// Brand is a lookup-table row keyed by its unique name.
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Color is a lookup-table row keyed by its unique name, with an optional
// hex code for display.
type Color struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex,omitempty"`
}

// User is an account row keyed by its unique username.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
