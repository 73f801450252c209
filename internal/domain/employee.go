package domain

// Employee models a staff member that can be placed on the roster.
type Employee struct {
	ID           string
	Name         string
	Team         string
	Capabilities map[string]bool
	Availability map[Window]bool
}

// CanPerform reports whether the employee holds the capability for a service.
func (e *Employee) CanPerform(service string) bool {
	return e.Capabilities[service]
}

// IsAvailable reports whether the employee's calendar covers the window.
func (e *Employee) IsAvailable(w Window) bool {
	return e.Availability[w]
}
