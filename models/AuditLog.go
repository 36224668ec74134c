package models

import "gorm.io/gorm"

type AuditLog struct {
	gorm.Model
	AdminUserID  uint   `json:"adminUserId" gorm:"index"`
	Action       string `json:"action" gorm:"size:64;index"`
	ResourceType string `json:"resourceType" gorm:"size:32"`
	ResourceID   uint   `json:"resourceId"`
	BeforeJSON   string `json:"beforeJson"`
	AfterJSON    string `json:"afterJson"`
	IPAddress    string `json:"ipAddress" gorm:"size:45"`
}
