package constant

type contextKey string

// ActorKey carries the authenticated model.Actor through request contexts.
const ActorKey contextKey = "actor"
