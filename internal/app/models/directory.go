package models

type Doctor struct {
	ID                 string             `json:"id" bson:"-"`
	Name               string             `json:"name" bson:"name"`
	Email              string             `json:"email" bson:"email"`
	RegistrationStatus RegistrationStatus `json:"registrationStatus" bson:"registrationStatus"`
}

type Patient struct {
	ID    string `json:"id" bson:"-"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}
