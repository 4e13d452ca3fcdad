package validation

import "regexp"

// Operation names a request schema.
type Operation int

const (
	OpRegisterUser Operation = iota + 1
	OpUpdateUser
	OpLoginUser
	OpCreateBook
	OpUpdateBook
	OpCreateAuthor
	OpUpdateAuthor
	OpCreateBorrower
)

var operationNames = map[Operation]string{
	OpRegisterUser:   "register_user",
	OpUpdateUser:     "update_user",
	OpLoginUser:      "login_user",
	OpCreateBook:     "create_book",
	OpUpdateBook:     "update_book",
	OpCreateAuthor:   "create_author",
	OpUpdateAuthor:   "update_author",
	OpCreateBorrower: "create_borrower",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "unknown"
}

// Field is one declared field of a schema. Required is the message reported
// when the field is absent; Rules only run once it is present.
type Field struct {
	Name     string
	Required string
	Rules    []Rule
}

// Schema is an ordered list of fields. Failures are reported in this order.
type Schema []Field

const passwordStrengthMessage = "Password must contain a minimum of 1 lower case letter [a-z], a minimum of 1 upper case letter [A-Z], " +
	"a minimum of 1 numeric character [0-9], and a minimum of 1 special character: " + PasswordSymbols

var phonePattern = regexp.MustCompile(`^[0-9+()\-\s]{5,20}$`)

func stringField(name, label string, extra ...Rule) Field {
	return Field{
		Name:     name,
		Required: label + " is required",
		Rules:    append([]Rule{IsString(label + " must be a string")}, extra...),
	}
}

var userSchema = Schema{
	stringField("firstName", "first name"),
	stringField("lastName", "last name"),
	stringField("username", "username",
		Length(4, 16, "username should be between 4 to 16 characters long"),
		IsAlphanumeric("Username must contains only letters and numbers"),
	),
	stringField("email", "email", IsEmail("please provide valid email")),
	{
		Name:     "password",
		Required: "password is required",
		Rules: []Rule{
			IsString("password must be a string"),
			Length(6, 1024, "Password length should be between 6 and 1024 characters long"),
			StrongPassword(passwordStrengthMessage),
		},
	},
}

var loginSchema = Schema{
	stringField("email", "email", IsEmail("please provide valid email")),
	stringField("password", "password"),
}

var bookSchema = Schema{
	stringField("title", "title"),
	stringField("description", "description"),
	stringField("author", "author"),
	{
		Name:     "isbn",
		Required: "ISBN is required",
		Rules: []Rule{
			IsString("ISBN must be with type string"),
			Length(10, 13, "ISBN should be between 10 to 13 characters long"),
		},
	},
	{Name: "price", Required: "price is required", Rules: []Rule{IsFloat("price must be a float")}},
	{Name: "status", Required: "status is required", Rules: []Rule{IsBoolean("status must be a boolean")}},
	{Name: "AuthorId", Required: "AuthorId is required", Rules: []Rule{IsUUID("AuthorId must be a UUID")}},
}

var authorSchema = Schema{
	stringField("firstName", "first name"),
	stringField("lastName", "last name"),
	{
		Name:     "email",
		Required: "email is required",
		Rules: []Rule{
			IsEmail("please provide valid email"),
			IsString("email must be a string"),
		},
	},
	stringField("phoneNumber", "phone number"),
}

var borrowerSchema = Schema{
	stringField("firstName", "first name"),
	stringField("lastName", "last name"),
	stringField("email", "email", IsEmail("please provide valid email")),
	stringField("phoneNumber", "phone number",
		Matches(phonePattern, "phone number must contain only digits and + ( ) -"),
	),
	{Name: "issueDate", Required: "issueDate is required", Rules: []Rule{IsDate("issueDate must be a valid date")}},
	{Name: "dueDate", Required: "dueDate is required", Rules: []Rule{IsDate("dueDate must be a valid date")}},
}

var schemas = map[Operation]Schema{
	OpRegisterUser:   userSchema,
	OpUpdateUser:     userSchema,
	OpLoginUser:      loginSchema,
	OpCreateBook:     bookSchema,
	OpUpdateBook:     bookSchema,
	OpCreateAuthor:   authorSchema,
	OpUpdateAuthor:   authorSchema,
	OpCreateBorrower: borrowerSchema,
}

// SchemaFor returns the schema registered for op.
func SchemaFor(op Operation) (Schema, bool) {
	s, ok := schemas[op]
	return s, ok
}
