package options

import (
	"encoding/json"

	"github.com/spf13/pflag"
	"k8s.io/component-base/cli/flag"
	"k8s.io/component-base/logs"

	"github.com/nexuspointwg/corectl/pkg/options"
)

// Options is the fully-populated configuration for the corectl server
// binary: ambient serving/log/store/auth options plus the reconciler's
// WireGuard environment inputs.
type Options struct {
	InsecureServing *options.InsecureServingOptions
	Log             *options.LogOptions
	Sqlite          *options.SqliteOptions
	JWT             *options.JWTOptions
	WireGuard       *options.WireGuardOptions
}

func NewOptions() *Options {
	return &Options{
		InsecureServing: options.NewInsecureServingOptions(),
		Log:             options.NewLogOptions(),
		Sqlite:          options.NewSqliteOptions(),
		JWT:             options.NewJWTOptions(),
		WireGuard:       options.NewWireGuardOptions(),
	}
}

// AddFlags adds the flags to the specified FlagSet and returns the grouped flag sets.
func (o *Options) AddFlags(fs *pflag.FlagSet) *flag.NamedFlagSets {
	nfs := &flag.NamedFlagSets{}

	configFS := nfs.FlagSet("Config")
	options.AddConfigFlag(configFS)

	insecureServingFS := nfs.FlagSet("Insecure Serving")
	o.InsecureServing.AddFlags(insecureServingFS)

	logsFlagSet := nfs.FlagSet("Logs")
	logs.AddFlags(logsFlagSet)
	o.Log.AddFlags(logsFlagSet)

	sqliteFS := nfs.FlagSet("Sqlite")
	o.Sqlite.AddFlags(sqliteFS)

	jwtFS := nfs.FlagSet("JWT")
	o.JWT.AddFlags(jwtFS)

	wireguardFS := nfs.FlagSet("WireGuard")
	o.WireGuard.AddFlags(wireguardFS)

	for _, name := range nfs.Order {
		fs.AddFlagSet(nfs.FlagSets[name])
	}
	return nfs
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)
	return string(data)
}
