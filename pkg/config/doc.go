/*
Package config loads and saves filter sets for chatfilters.

	            +--------------+
	            | []filter.    |
	            |   Config     |
	            +------+-------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  JSON   |   |  YAML   |   |   HCL   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Reads filter files in JSON, YAML or HCL
- Converts file entries into validated filter.Config values
- Loads whole directories of filter files by glob
- Writes filter sets back out as JSON or YAML

🔄 Flow:
1. Pick a parser from the file name (.chatfilters tries YAML, then HCL)
2. Decode into File / FilterEntry
3. Convert entries (colors parsed, processor settings re-encoded as JSON)
4. Validate each filter and reject duplicate names

📝 Processor settings stay opaque here. They are handed to the processor's
Load, which falls back to defaults for anything missing or malformed.

🔍 Example:

	cfgs, err := config.LoadDir(ctx, "filters", config.DefaultPattern)
	if err != nil {
		return err
	}
	chain, err := filter.BuildChain(cfgs, services)
*/
package config
