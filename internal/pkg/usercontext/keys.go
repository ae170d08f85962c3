package usercontext

// Locals key shared between the auth middleware and controllers
const KeyUserContext = "USER_CONTEXT"
