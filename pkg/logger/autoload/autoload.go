// Package autoload configures the global logger from the LOG_* environment
// on import. Import it for side effect from main.
package autoload

import (
	configx "github.com/bankbot/bankbot/pkg/config"
	logx "github.com/bankbot/bankbot/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
