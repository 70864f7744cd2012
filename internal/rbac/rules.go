package rbac

// Default policy. "author" is the quiz creator; "taker" is anyone
// answering a quiz.
var RolePermissions = map[string][]string{
	"taker": {
		"quiz:view",
		"attempt:create",
		"attempt:save",
		"attempt:submit",
		"attempt:view-own",
	},
	"author": {
		"quiz:create",
		"quiz:view",
		"quiz:delete",
		"quiz:export",
		"generate:run",
		"note:upload",
		"attempt:*",
	},
	"admin": {
		"*",
	},
}
