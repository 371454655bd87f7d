package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// The router is a map from module name to the IBCModule which contains all the
// module-defined callbacks. A module name is either a full port identifier, or the
// prefix of a family of ports such as "wasm" for "wasm.<contract address>".
type Router struct {
	routes map[string]IBCModule
	sealed bool
}

func NewRouter() *Router {
	return &Router{
		routes: make(map[string]IBCModule),
	}
}

// Seal prevents the Router from any subsequent route handlers to be registered.
// Seal will panic if called more than once.
func (rtr *Router) Seal() {
	if rtr.sealed {
		panic(errors.New("router already sealed"))
	}
	rtr.sealed = true
}

// Sealed returns a boolean signifying if the Router is sealed or not.
func (rtr Router) Sealed() bool {
	return rtr.sealed
}

// AddRoute adds IBCModule for a given module name. It returns the Router
// so AddRoute calls can be linked. It will panic if the Router is sealed.
func (rtr *Router) AddRoute(module string, cbs IBCModule) *Router {
	if rtr.sealed {
		panic(fmt.Errorf("router sealed; cannot register %s route callbacks", module))
	}
	if !sdk.IsAlphaNumeric(module) {
		panic(errors.New("route expressions can only contain alphanumeric characters"))
	}
	if rtr.HasRoute(module) {
		panic(fmt.Errorf("route %s has already been registered", module))
	}

	rtr.routes[module] = cbs
	return rtr
}

// HasRoute returns true if the Router has a module registered for the port or false
// otherwise.
func (rtr *Router) HasRoute(portID string) bool {
	_, ok := rtr.Route(portID)
	return ok
}

// Route returns the IBCModule bound to a port. Exact module names win over prefix
// matches.
func (rtr *Router) Route(portID string) (IBCModule, bool) {
	if route, ok := rtr.routes[portID]; ok {
		return route, true
	}

	module, _, found := strings.Cut(portID, ".")
	if !found {
		return nil, false
	}

	route, ok := rtr.routes[module]
	return route, ok
}

// Keys returns the registered module names in lexicographical order.
func (rtr *Router) Keys() []string {
	keys := make([]string, 0, len(rtr.routes))
	for k := range rtr.routes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
