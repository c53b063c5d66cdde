package constants

import "fmt"

const (
	ERROR_INTERNAL_ERROR     = "Internal server error."
	NOT_AUTHENTICATED        = "Authentication credentials were not provided."
	INVALID_TOKEN            = "Given token not valid for any token type."
	PERMISSION_DENIED        = "You do not have permission to perform this action."
	NOT_FOUND                = "Not found."
	INVALID_CREDENTIALS      = "No active account found with the given credentials."
	TOKEN_BLACKLISTED        = "Token is blacklisted."
	MALFORMED_REQUEST        = "Malformed request body."
	SEAT_TAKEN               = "The seat is already taken"
	INVALID_IMAGE            = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	NOT_A_FILE               = "The submitted data was not a file. Check the encoding type on the form."
	ARRIVAL_BEFORE_DEPARTURE = "Arrival time must be after departure time."
	EMAIL_TAKEN              = "User with this email already exists."
	FIELD_REQUIRED           = "This field is required."
)

const (
	TOKEN_ACCESS  = "access"
	TOKEN_REFRESH = "refresh"
)

// Resource names as they appear under /api/station/.
const (
	RESOURCE_CREWS       = "crews"
	RESOURCE_STATIONS    = "stations"
	RESOURCE_ROUTES      = "routes"
	RESOURCE_TRAIN_TYPES = "train-types"
	RESOURCE_TRAINS      = "trains"
	RESOURCE_JOURNEYS    = "journeys"
	RESOURCE_ORDERS      = "orders"
	RESOURCE_TICKETS     = "tickets"
)

func InvalidPk(value any) string {
	return fmt.Sprintf("Invalid pk \"%v\" - object does not exist.", value)
}
