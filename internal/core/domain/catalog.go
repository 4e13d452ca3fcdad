package domain

import "time"

// Entity names used in logs, metrics and idempotency keys.
const (
	EntityUser     = "user"
	EntityBook     = "book"
	EntityAuthor   = "author"
	EntityBorrower = "borrower"
)

// Author writes books.
type Author struct {
	ID          string    `json:"id" bson:"_id"`
	FirstName   string    `json:"firstName" bson:"first_name"`
	LastName    string    `json:"lastName" bson:"last_name"`
	Email       string    `json:"email" bson:"email"`
	PhoneNumber string    `json:"phoneNumber" bson:"phone_number"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// Book is a catalogue entry. Status reports whether the copy is available.
type Book struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Author      string    `json:"author" bson:"author"`
	ISBN        string    `json:"isbn" bson:"isbn"`
	Price       float64   `json:"price" bson:"price"`
	Status      bool      `json:"status" bson:"status"`
	AuthorID    string    `json:"AuthorId" bson:"author_id"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// Borrower is a library member holding a loan between IssueDate and DueDate.
type Borrower struct {
	ID          string    `json:"id" bson:"_id"`
	FirstName   string    `json:"firstName" bson:"first_name"`
	LastName    string    `json:"lastName" bson:"last_name"`
	Email       string    `json:"email" bson:"email"`
	PhoneNumber string    `json:"phoneNumber" bson:"phone_number"`
	IssueDate   time.Time `json:"issueDate" bson:"issue_date"`
	DueDate     time.Time `json:"dueDate" bson:"due_date"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}
