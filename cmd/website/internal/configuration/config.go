package configuration

import "github.com/adampresley/configinator"

type Config struct {
	AnimationSettleMs  int    `flag:"settle" env:"ANIMATION_SETTLE_MS" default:"500" description:"Milliseconds a lightbox transition stays locked. Must exceed the CSS animation duration"`
	AssetDir           string `flag:"assetdir" env:"ASSET_DIR" default:"./data/assets" description:"Directory holding media assets when the local store is used"`
	AssetSource        string `flag:"assetsource" env:"ASSET_SOURCE" default:"local" description:"Where media assets live. Valid values are 'local' and 's3'"`
	AwsEndpointUrl     string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"http://localhost:4566" description:"AWS endpoint URL"`
	AwsRegion          string `flag:"awsregion" env:"AWS_REGION" default:"us-central-1" description:"AWS region"`
	AwsAccessKeyId     string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	AwsBucket          string `flag:"awsbucket" env:"AWS_BUCKET" default:"fisheye-media" description:"S3 bucket for media assets"`
	ContactInbox       string `flag:"contactinbox" env:"CONTACT_INBOX" default:"" description:"Email address contact submissions are forwarded to"`
	DataFile           string `flag:"datafile" env:"DATA_FILE" default:"./data/photographers.json" description:"Path or URL of the media document"`
	DSN                string `flag:"dsn" env:"DSN" default:"file:./data/fisheye.db" description:"Data source name for the sqlite like store"`
	EmailApiKey        string `flag:"emailapikey" env:"EMAIL_API_KEY" default:"" description:"API key for sending contact emails"`
	FetchTimeoutSec    int    `flag:"fetchtimeout" env:"FETCH_TIMEOUT_SECONDS" default:"8" description:"Timeout in seconds for loading the media document"`
	Host               string `flag:"host" env:"HOST" default:"localhost:8080" description:"The address and port to bind the HTTP server to"`
	LikeStore          string `flag:"likestore" env:"LIKE_STORE" default:"file" description:"Where like counts persist. Valid values are 'file' and 'sqlite'"`
	LogFile            string `flag:"logfile" env:"LOG_FILE" default:"" description:"Optional path for rotated file logs"`
	LogLevel           string `flag:"loglevel" env:"LOG_LEVEL" default:"debug" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxThumbnailWorker int    `flag:"mtw" env:"MAX_THUMBNAIL_WORKERS" default:"20" description:"Maximum number of concurrent thumbnail workers"`
	SessionTTLMinutes  int    `flag:"sessionttl" env:"SESSION_TTL_MINUTES" default:"30" description:"Minutes an idle gallery session survives"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}
