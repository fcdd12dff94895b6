package blocksign

import (
	"github.com/tposnet/tposd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("BSGN")
