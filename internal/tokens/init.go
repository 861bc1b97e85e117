package tokens

// InitializeTokenCounters is the startup hook for registering token
// counters. It registers nothing: the package has no provider-specific
// counters, and TiktokenCounter needs no registration.
//
// This function does not require any API keys.
//
// Example:
//
//	func main() {
//	    tokens.InitializeTokenCounters()
//	    // Token counting is now available
//	}
func InitializeTokenCounters() {
	// Future provider-specific counters can be registered here
}

// InitializeTokenCountersWithKeys is the startup hook for registering
// token counters that need API keys. It takes no keys and registers
// nothing.
//
// Example:
//
//	func main() {
//	    // Load API keys from environment or config
//	    tokens.InitializeTokenCountersWithKeys()
//	    // No provider-specific counters are registered
//	}
func InitializeTokenCountersWithKeys() {
	// Future provider-specific counters can be registered here
}
