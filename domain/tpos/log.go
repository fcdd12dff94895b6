package tpos

import (
	"github.com/tposnet/tposd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("TPOS")
