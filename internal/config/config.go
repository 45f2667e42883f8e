package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Checkout    Checkout

	Razorpay    Razorpay    `envPrefix:"RAZORPAY_"`
	DataService DataService `envPrefix:"DATA_SERVICE_"`
	ImageStore  ImageStore  `envPrefix:"IMAGE_STORE_"`
}

type Razorpay struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
	KeyID      string `env:"KEY_ID,required"`
	KeySecret  string `env:"KEY_SECRET,required"`
}

// DataService is the hosted relational store. Missing URL or key is a fatal
// startup error for any command that touches it.
type DataService struct {
	URL string `env:"URL,required"`
	Key string `env:"KEY,required"`
}

type ImageStore struct {
	// Backend selects the image store implementation: "memory" (dev-only,
	// lost on restart) or "sqlite".
	Backend string `env:"BACKEND" envDefault:"memory"`
	Path    string `env:"PATH" envDefault:"images.db"`
}

// Checkout holds the display fields echoed into every checkout config.
type Checkout struct {
	StoreName     string `env:"STORE_NAME" envDefault:"Storefront"`
	Description   string `env:"STORE_DESCRIPTION" envDefault:"Order payment"`
	ThemeColor    string `env:"CHECKOUT_THEME_COLOR" envDefault:"#528FF0"`
	UpsertTimeout int    `env:"CUSTOMER_UPSERT_TIMEOUT" envDefault:"10"` // seconds
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
