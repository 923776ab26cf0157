/*
Package operation plans and applies syncs from one source repository to many destinations.

	+-------------+
	|   Source    |
	|  (ListTree) |
	+------+------+
	       |
	+------+------+
	|  Filter +   |
	|  Transform  |
	+------+------+
	       |
	+------+------+------+
	|             |      |
	+----+----+  +----+----+
	|  Diff   |  |  Diff   |   one per destination
	+----+----+  +----+----+
	     |            |
	  branch, events, pull request

🎯 Purpose:
- Lists the source once and shapes it with origin_files and the transformations
- Diffs the result against each destination's base branch, filtered by destination_files
- Pushes the events to a fresh branch and opens a pull request per destination

🔄 Flow:
1. Plan builds the source tree and one DestinationPlan per destination
2. Sync skips destinations with no events
3. Otherwise it branches off the base head, applies events in path order and opens the pull request
4. The Runner walks destinations one at a time, or through a bounded pool when Concurrency > 1

⚡ Errors:
Failures inside a destination are wrapped in *DestinationError. Sequential runs stop at
the first failure, concurrent runs finish every destination and join the errors.

🔍 Example:

	op, err := operation.New(operation.Options{
		Config:   cfg,
		Provider: provider,
		Logger:   log.New(os.Stdout, zerolog.InfoLevel),
	})
	if err != nil {
		return err
	}

	results, err := op.Sync(ctx)
*/
package operation
