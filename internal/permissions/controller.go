package permissions

import (
	"github.com/sirupsen/logrus"
)

// AccessType represents the access level of a user
type AccessType int

const (
	// Demo represents unauthorized users with read-only demo menus
	Demo AccessType = iota
	// Operator represents read-only panel access
	Operator
	// Admin represents full panel access
	Admin
)

// String returns the access type name.
func (a AccessType) String() string {
	switch a {
	case Admin:
		return "admin"
	case Operator:
		return "operator"
	default:
		return "demo"
	}
}

// Controller resolves user access from the configured ID lists
type Controller struct {
	adminIDs    map[int64]bool
	operatorIDs map[int64]bool
	logger      *logrus.Logger
}

// NewController creates a new permission controller. Admin membership wins
// when an ID appears in both lists.
func NewController(adminIDs, operatorIDs []int64, logger *logrus.Logger) *Controller {
	adminMap := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		adminMap[id] = true
	}

	operatorMap := make(map[int64]bool, len(operatorIDs))
	for _, id := range operatorIDs {
		operatorMap[id] = true
	}

	logger.Infof("Initialized permission controller with %d admins, %d operators", len(adminMap), len(operatorMap))

	return &Controller{
		adminIDs:    adminMap,
		operatorIDs: operatorMap,
		logger:      logger,
	}
}

// GetAccessType determines the access type of a user
func (c *Controller) GetAccessType(userID int64) AccessType {
	if c.adminIDs[userID] {
		return Admin
	}
	if c.operatorIDs[userID] {
		return Operator
	}
	return Demo
}

// IsAdmin checks if a user is an admin
func (c *Controller) IsAdmin(userID int64) bool {
	return c.adminIDs[userID]
}
