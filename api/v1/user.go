package v1

type LoginRequest struct {
	Username string `json:"username,required" vd:"len($)>0"`
	Password string `json:"password,required" vd:"len($)>0"`
}

type LoginPayload struct {
	Token string `json:"token"`
}

type SignupRequest struct {
	Username string `json:"username,required" vd:"len($)>0"`
	Password string `json:"password,required" vd:"len($)>0"`
	Email    string `json:"email,required" vd:"len($)>0"`
}

type UserPayload struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	CreateTime string `json:"create_time"`
}

// UserUpdateRequest updates the caller's own profile. Blank fields are
// left unchanged.
type UserUpdateRequest struct {
	Password string `json:"password"`
	Email    string `json:"email"`
}

type LoginResponse struct {
	Response
	LoginPayload `json:"payload"`
}

type UserResponse struct {
	Response
	UserPayload `json:"payload"`
}
