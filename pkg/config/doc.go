/*
Package config loads and validates the syncy configuration file.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |   HCL   |   |  JSON   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Names the source repository and ref that files are mirrored from
- Names every destination repository and the base branch it merges into
- Carries the workdir expressions and transformation descriptors

🔄 Flow:
1. Load reads the file through an afero filesystem
2. A registered Parser is picked by extension (a bare .syncy file is tried as YAML, then HCL)
3. Validate checks required fields and fills in defaults
4. Compile turns the expression and transformation strings into typed values

⚡ Errors:
Validation and compile failures are *ConfigError values that name the
offending field, for example "destinations[1].name" or "origin_files".

🔍 Example:

	cfg, err := config.LoadFile(ctx, ".syncy.yaml")
	if err != nil {
		var cerr *config.ConfigError
		if errors.As(err, &cerr) {
			fmt.Printf("fix %s: %v\n", cerr.Field, cerr.Err)
		}
		return err
	}

	compiled, err := config.Compile(cfg)
	if err != nil {
		return err
	}
*/
package config
