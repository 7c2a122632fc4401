package main

import "github.com/getcovered/userapi-go/internal/model"

// demoUsers are the accounts created by a plain `seed` run.
var demoUsers = []model.RegisterRequest{
	{Email: "john.doe@getcovered.io", FirstName: "John", LastName: "Doe", Password: "Password123!"},
	{Email: "jane.smith@getcovered.io", FirstName: "Jane", LastName: "Smith", Password: "SecurePass456#"},
	{Email: "mike.johnson@getcovered.io", FirstName: "Mike", LastName: "Johnson", Password: "TestPass789$"},
	{Email: "sarah.williams@getcovered.io", FirstName: "Sarah", LastName: "Williams", Password: "MyPassword123!"},
	{Email: "david.brown@getcovered.io", FirstName: "David", LastName: "Brown", Password: "StrongPass456#"},
	{Email: "emily.davis@getcovered.io", FirstName: "Emily", LastName: "Davis", Password: "SafePass789$"},
	{Email: "chris.wilson@getcovered.io", FirstName: "Chris", LastName: "Wilson", Password: "UserPass123!"},
	{Email: "amanda.taylor@getcovered.io", FirstName: "Amanda", LastName: "Taylor", Password: "LoginPass456#"},
	{Email: "robert.anderson@getcovered.io", FirstName: "Robert", LastName: "Anderson", Password: "AccessPass789$"},
	{Email: "lisa.thomas@getcovered.io", FirstName: "Lisa", LastName: "Thomas", Password: "AdminPass123!"},
}
