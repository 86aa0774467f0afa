package where

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zapp-cli/zapp/filesystem"
)

func TestConfig(t *testing.T) {
	Convey("Where resolution", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		Convey("Should honor the environment override", func() {
			So(os.Setenv(EnvConfigPath, "/custom/zapp"), ShouldBeNil)
			defer os.Unsetenv(EnvConfigPath)

			So(Config(), ShouldEqual, "/custom/zapp")
		})

		Convey("Slots file lives inside the config directory", func() {
			So(os.Setenv(EnvConfigPath, "/custom/zapp"), ShouldBeNil)
			defer os.Unsetenv(EnvConfigPath)

			So(Slots(), ShouldEqual, "/custom/zapp/slots.json")
		})
	})
}
