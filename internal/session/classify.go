package session

import (
	"sirpo/pkg/domain"
)

// LoginRecord is the raw shape a login collaborator returns before
// classification. Applicant-shaped responses may actually encode an
// administrative account through the numeric UserType field.
type LoginRecord struct {
	ID              int64  `json:"id"`
	DisplayName     string `json:"display_name"`
	Email           string `json:"email"`
	UserType        int    `json:"user_type,omitempty"`
	UserID          string `json:"user_id,omitempty"`
	Role            string `json:"role,omitempty"`
	ZonalOfficeID   int64  `json:"zonal_office_id,omitempty"`
	ZonalOfficeName string `json:"zonal_office_name,omitempty"`
	Token           string `json:"token,omitempty"`
}

// Numeric user types administrative accounts arrive under.
const (
	userTypeSuperAdmin  = 1
	userTypeCoordinator = 2
	userTypeDateOfficer = 3
	userTypeUabaOfficer = 4
)

var roleByUserType = map[int]domain.AdminRole{
	userTypeSuperAdmin:  domain.AdminRoleSuperAdmin,
	userTypeCoordinator: domain.AdminRoleCoordinator,
	userTypeDateOfficer: domain.AdminRoleDateOfficer,
	userTypeUabaOfficer: domain.AdminRoleUabaOfficer,
}

// UserTypeFor returns the numeric user type a role travels under in login
// payloads. Zero for invalid roles.
func UserTypeFor(role domain.AdminRole) int {
	for userType, r := range roleByUserType {
		if r == role {
			return userType
		}
	}
	return 0
}

// Classify resolves a login record into a tagged identity. The UserType
// field is inspected first; only when it is absent is the record treated as
// an applicant. This runs before any persistence decision because applicant
// and administrator records use different schemas and retention rules.
func Classify(rec LoginRecord) Identity {
	if rec.UserType != 0 {
		role := domain.AdminRole(rec.Role)
		if !role.IsValid() {
			role = roleByUserType[rec.UserType]
		}
		if !role.IsValid() {
			role = domain.AdminRoleCoordinator
		}
		userID, err := domain.ParseAdminUserID(rec.UserID)
		if err != nil {
			userID = domain.AdminUserID{}
		}
		return ForAdministrator(Administrator{
			Role:            role,
			UserID:          userID,
			DisplayName:     rec.DisplayName,
			ZonalOfficeID:   domain.ZonalOfficeID(rec.ZonalOfficeID),
			ZonalOfficeName: rec.ZonalOfficeName,
			Token:           rec.Token,
		})
	}
	return ForApplicant(Applicant{
		ID:          domain.ApplicantID(rec.ID),
		DisplayName: rec.DisplayName,
		Email:       rec.Email,
		Token:       rec.Token,
	})
}
