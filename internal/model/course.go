package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Instructor  string  `gorm:"size:100" json:"instructor"`
	Price       float64 `gorm:"default:0" json:"price"`
	Thumbnail   string  `gorm:"size:255" json:"thumbnail"`
	IsPublished bool    `json:"isPublished"`
}

func (Course) TableName() string {
	return "courses"
}

// Enrollment links a student to a course. One row per student per course.
type Enrollment struct {
	BaseModel
	StudentID uint   `gorm:"index;type:bigint unsigned;uniqueIndex:idx_student_course" json:"studentId"`
	CourseID  uint   `gorm:"index;type:bigint unsigned;uniqueIndex:idx_student_course" json:"courseId"`
	Course    *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
