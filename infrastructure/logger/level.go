package logger

import "strings"

// Level is the severity of a log entry, and the threshold below which a
// logger or a writer drops entries.
type Level uint32

// Level constants, from most to least verbose.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

// levelTags are the tags printed in front of each entry.
var levelTags = [...]string{"TRC", "DBG", "INF", "WRN", "ERR", "CRT", "OFF"}

// levelsByName maps both the long level names accepted by --loglevel and the
// printed tags to their level.
var levelsByName = func() map[string]Level {
	names := map[string]Level{
		"trace":    LevelTrace,
		"debug":    LevelDebug,
		"info":     LevelInfo,
		"warn":     LevelWarn,
		"error":    LevelError,
		"critical": LevelCritical,
		"off":      LevelOff,
	}
	for level, tag := range levelTags {
		names[strings.ToLower(tag)] = Level(level)
	}
	return names
}()

// LevelFromString parses a level name or tag, ignoring case. Unknown names
// yield LevelInfo and false.
func LevelFromString(s string) (Level, bool) {
	level, ok := levelsByName[strings.ToLower(s)]
	if !ok {
		return LevelInfo, false
	}
	return level, true
}

// String returns the level's tag. Anything past LevelCritical is "OFF".
func (l Level) String() string {
	if l >= LevelOff {
		return levelTags[LevelOff]
	}
	return levelTags[l]
}
