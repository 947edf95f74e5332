package models

// Department, Province and District form the three-level ubigeo lookup used
// by address forms. Provinces belong to a department, districts to a
// province.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Province struct {
	ID           string `json:"id"`
	DepartmentID string `json:"department_id"`
	Name         string `json:"name"`
}

type District struct {
	ID         string `json:"id"`
	ProvinceID string `json:"province_id"`
	Name       string `json:"name"`
}
