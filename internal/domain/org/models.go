package org

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	TeamID       string `json:"teamId,omitempty"`
	DepartmentID string `json:"departmentId,omitempty"`
	ManagerID    string `json:"managerId,omitempty"`
	PasswordHash string `json:"-"`
}

type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"departmentId"`
	ManagerID    string `json:"managerId,omitempty"`
}
