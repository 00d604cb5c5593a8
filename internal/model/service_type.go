package model

import "strings"

// ServiceType identifies the kind of work performed on a watch.
type ServiceType string

// Built-in service types. The set is open: any non-empty label parses, so
// new service types can be introduced without a code change.
const (
	ServiceFiveYearBattery ServiceType = "5 Year Battery"
	ServiceLifetimeBattery ServiceType = "Lifetime Battery"
	ServiceBandAdjustment  ServiceType = "Band Adjustment"
	ServiceOverhaul        ServiceType = "Overhaul"

	// ServiceTypeNone is used by the simple pricing variant, which does not
	// track service types.
	ServiceTypeNone ServiceType = ""
)

// BuiltinServiceTypes lists the service types known out of the box, in
// display order.
func BuiltinServiceTypes() []ServiceType {
	return []ServiceType{
		ServiceFiveYearBattery,
		ServiceLifetimeBattery,
		ServiceBandAdjustment,
		ServiceOverhaul,
	}
}

// ParseServiceType normalizes a user-entered service type label. Known
// labels match case-insensitively; anything else is kept verbatim after
// trimming.
func ParseServiceType(s string) ServiceType {
	s = strings.TrimSpace(s)
	for _, st := range BuiltinServiceTypes() {
		if strings.EqualFold(s, string(st)) {
			return st
		}
	}
	return ServiceType(s)
}

func (s ServiceType) String() string {
	return string(s)
}
