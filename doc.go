/*

Package autoroute routes a package's HTTP handlers by naming convention.

A package declares its handlers and its router on a [Module],
then calls [Register] once at start-up:

	var (
		api = router.New(env, nil)
		mod = autoroute.NewModule("").
			Add("api", api).
			Func(FetchStatus).
			Func(ListAccounts).
			Func(NorouteDebug)
	)

	func main() {
		if err := autoroute.Register(mod); err != nil {
			log.Fatal(err)
		}
		http.ListenAndServe(":8080", api)
	}

[Register] adds FetchStatus at GET /fetch-status and ListAccounts at GET /list-accounts.
NorouteDebug carries [ExcludePrefix], and so is left out.

# Naming convention

A handler's path is its name in snake case, underscores turned into hyphens,
behind a leading slash; see [PathFor].
[At] and [WithPath] override the derived path.

# Handlers routed elsewhere

A handler already routed by hand is skipped when it is marked [Routed],
or when its doc comment carries an annotation naming the router:

	// FetchReport is routed by hand.
	//
	// @api.get("/reports/{id}")
	func FetchReport(w http.ResponseWriter, r *http.Request) {}

Reading annotations requires the handler's source file at run time;
see package [github.com/xy-planning-network/autoroute/annotation].
Use [WithoutSource] where sources are not shipped, relying on [Routed] and [Annotate] instead.

# Routers

Any value implementing [router.Router] is a router.
[Register] uses the first one added to the Module.
[RegisterOn] takes the router explicitly instead.

*/
package autoroute
