// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
	SecurityAdmin                       // Access token and active admin role required
)

// Route names are assigned on the mux router and map to their required security level.
const (
	RouteHealth = "Health"

	RouteRegister = "Register"
	RouteLogin    = "Login"

	RouteGetMe    = "GetMe"
	RouteUpdateMe = "UpdateMe"
	RouteSetRole  = "SetRole"

	RouteCreateProperty   = "CreateProperty"
	RouteListProperties   = "ListProperties"
	RouteListMyProperties = "ListMyProperties"
	RouteGetProperty      = "GetProperty"
	RouteUpdateProperty   = "UpdateProperty"
	RouteDeleteProperty   = "DeleteProperty"

	RouteGetAvailability    = "GetAvailability"
	RouteListOverrides      = "ListOverrides"
	RouteBulkSetOverrides   = "BulkSetOverrides"
	RouteBulkClearOverrides = "BulkClearOverrides"

	RouteCreateBooking       = "CreateBooking"
	RouteListMyBookings      = "ListMyBookings"
	RouteListReceived        = "ListReceivedBookings"
	RouteListAllBookings     = "ListAllBookings"
	RouteGetBooking          = "GetBooking"
	RouteModifyBooking       = "ModifyBooking"
	RouteChangeBookingStatus = "ChangeBookingStatus"
	RouteCancelBooking       = "CancelBooking"

	RouteAssignSupervisor = "AssignSupervisor"
	RouteListSupervisions = "ListSupervisions"
	RouteRevokeSupervisor = "RevokeSupervisor"

	RouteSubmitVerification   = "SubmitVerification"
	RouteMyVerification       = "MyVerification"
	RoutePendingVerifications = "PendingVerifications"
	RouteGetVerification      = "GetVerification"
	RouteApproveVerification  = "ApproveVerification"
	RouteRejectVerification   = "RejectVerification"
	RouteWithdrawVerification = "WithdrawVerification"
	RouteUploadDocument       = "UploadDocument"
	RouteDownloadDocument     = "DownloadDocument"
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	RouteHealth: SecurityPublic,

	// Auth - Public
	RouteRegister: SecurityPublic,
	RouteLogin:    SecurityPublic,

	// Users
	RouteGetMe:    SecurityAccess,
	RouteUpdateMe: SecurityAccess,
	RouteSetRole:  SecurityAdmin,

	// Properties
	RouteListProperties:   SecurityPublic,
	RouteGetProperty:      SecurityPublic,
	RouteCreateProperty:   SecurityAccess,
	RouteListMyProperties: SecurityAccess,
	RouteUpdateProperty:   SecurityAccess,
	RouteDeleteProperty:   SecurityAccess,

	// Availability
	RouteGetAvailability:    SecurityPublic,
	RouteListOverrides:      SecurityAccess,
	RouteBulkSetOverrides:   SecurityAccess,
	RouteBulkClearOverrides: SecurityAccess,

	// Bookings
	RouteCreateBooking:       SecurityAccess,
	RouteListMyBookings:      SecurityAccess,
	RouteListReceived:        SecurityAccess,
	RouteListAllBookings:     SecurityAdmin,
	RouteGetBooking:          SecurityAccess,
	RouteModifyBooking:       SecurityAccess,
	RouteChangeBookingStatus: SecurityAccess,
	RouteCancelBooking:       SecurityAccess,

	// Supervisions
	RouteAssignSupervisor: SecurityAccess,
	RouteListSupervisions: SecurityAccess,
	RouteRevokeSupervisor: SecurityAccess,

	// KYC
	RouteSubmitVerification:   SecurityAccess,
	RouteMyVerification:       SecurityAccess,
	RouteUploadDocument:       SecurityAccess,
	RouteDownloadDocument:     SecurityAccess,
	RoutePendingVerifications: SecurityAdmin,
	RouteGetVerification:      SecurityAdmin,
	RouteApproveVerification:  SecurityAdmin,
	RouteRejectVerification:   SecurityAdmin,
	RouteWithdrawVerification: SecurityAdmin,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown routes
	return SecurityAdmin
}
