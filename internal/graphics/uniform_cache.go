package graphics

// uniformCache caches uniform locations so each name is looked up once per program.
// Names the program does not declare resolve to -1 and are skipped by the setters.
type uniformCache struct {
	lookup    func(name string) int32
	logf      func(format string, args ...any)
	locations map[string]int32
	verbose   bool
}

func newUniformCache(lookup func(string) int32, logf func(string, ...any)) *uniformCache {
	return &uniformCache{
		lookup:    lookup,
		logf:      logf,
		locations: make(map[string]int32),
	}
}

// get returns the location for name and whether the program declares it.
func (c *uniformCache) get(name string) (int32, bool) {
	loc, ok := c.locations[name]
	if !ok {
		loc = c.lookup(name)
		c.locations[name] = loc
		if loc < 0 && c.verbose && c.logf != nil {
			c.logf("uniform %q not found in program, ignoring", name)
		}
	}
	return loc, loc >= 0
}

// reset drops all cached locations, e.g. after relinking.
func (c *uniformCache) reset() {
	c.locations = make(map[string]int32)
}
